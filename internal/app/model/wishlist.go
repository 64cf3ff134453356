package model

// DedupeWishlist keeps the first occurrence of every product id
func DedupeWishlist(items []Product) []Product {
	seen := make(map[int]struct{}, len(items))
	result := make([]Product, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		result = append(result, item)
	}
	return result
}

// ContainsProduct reports whether the list holds the product id
func ContainsProduct(items []Product, productID int) bool {
	for _, item := range items {
		if item.ID == productID {
			return true
		}
	}
	return false
}

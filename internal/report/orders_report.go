// Package report renders a session's orders as an XLSX workbook.
package report

import (
	"bytes"
	"fmt"
	"sort"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	OrdersSheet   = "Orders"
	ItemsSheet    = "Items"
	CategorySheet = "Categories"
	ContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	orderHeader    = []interface{}{"Order ID", "Date", "Status", "Customer", "Email", "Items", "Subtotal", "Discount", "Shipping", "Tax", "Total", "Promo", "Tracking"}
	itemHeader     = []interface{}{"Order ID", "Product ID", "Product", "Category", "Material", "Unit Price", "Quantity", "Line Total"}
	categoryHeader = []interface{}{"Category", "Units"}
)

// OrdersWorkbook builds a workbook with one row per order, one row per
// ordered line and units per category
func OrdersWorkbook(orders []model.Order) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName(f.GetSheetName(0), OrdersSheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}
	if _, err := f.NewSheet(ItemsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	if _, err := f.NewSheet(CategorySheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}

	if err := writeRow(f, OrdersSheet, 1, orderHeader); err != nil {
		return nil, err
	}
	if err := writeRow(f, ItemsSheet, 1, itemHeader); err != nil {
		return nil, err
	}
	if err := writeRow(f, CategorySheet, 1, categoryHeader); err != nil {
		return nil, err
	}

	itemRow := 2
	for i, order := range orders {
		customer := order.Shipping.FirstName + " " + order.Shipping.LastName
		row := []interface{}{
			order.ID,
			order.Date.Format("2006-01-02 15:04"),
			string(order.Status),
			customer,
			order.Shipping.Email,
			model.ItemCount(order.Items),
			order.Pricing.Subtotal.InexactFloat64(),
			order.Pricing.Discount.InexactFloat64(),
			order.Pricing.Shipping.InexactFloat64(),
			order.Pricing.Tax.InexactFloat64(),
			order.Total.InexactFloat64(),
			order.PromoCode,
			order.TrackingNumber,
		}
		if err := writeRow(f, OrdersSheet, i+2, row); err != nil {
			return nil, err
		}

		for _, item := range order.Items {
			line := item.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			row := []interface{}{
				order.ID,
				item.ID,
				item.Name,
				string(item.Category),
				string(item.Material),
				item.Price.InexactFloat64(),
				item.Quantity,
				line.InexactFloat64(),
			}
			if err := writeRow(f, ItemsSheet, itemRow, row); err != nil {
				return nil, err
			}
			itemRow++
		}
	}

	units := model.UnitsPerCategory(orders)
	categories := make([]string, 0, len(units))
	for category := range units {
		categories = append(categories, string(category))
	}
	sort.Strings(categories)
	for i, category := range categories {
		row := []interface{}{category, units[model.ProductCategory(category)]}
		if err := writeRow(f, CategorySheet, i+2, row); err != nil {
			return nil, err
		}
	}

	return f, nil
}

// OrdersXLSX renders the workbook to bytes
func OrdersXLSX(orders []model.Order) ([]byte, error) {
	f, err := OrdersWorkbook(orders)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write %s row %d: %w", sheet, row, err)
	}
	return nil
}

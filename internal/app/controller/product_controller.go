package controller

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/catalog"
	apperrors "github.com/ikkim/jewel-storefront/internal/errors"
	"github.com/ikkim/jewel-storefront/internal/middleware"
	"github.com/shopspring/decimal"
)

type ProductController struct {
	catalog *catalog.Catalog
}

func NewProductController(products *catalog.Catalog) *ProductController {
	return &ProductController{
		catalog: products,
	}
}

// ListProducts filters and sorts the catalog
// GET /api/v1/products?q=&category=&material=&min_price=&max_price=&sort=
func (ctrl *ProductController) ListProducts(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	criteria, fields := criteriaFromQuery(c)
	if len(fields) > 0 {
		log.Warn("Invalid product filter", map[string]interface{}{
			"fields": fields,
		})
		apperrors.RespondWithValidationError(c, fields)
		return
	}

	products := ctrl.catalog.Search(criteria)

	log.Debug("Products listed", map[string]interface{}{
		"query":      criteria.Query,
		"categories": criteria.Categories,
		"sort":       criteria.Sort,
		"count":      len(products),
	})

	c.JSON(http.StatusOK, gin.H{
		"products":       products,
		"count":          len(products),
		"sort":           criteria.Sort,
		"category_param": catalog.CategoryParam(criteria.Categories),
	})
}

// GetFilters returns the filter sidebar options
// GET /api/v1/products/filters
func (ctrl *ProductController) GetFilters(c *gin.Context) {
	c.JSON(http.StatusOK, ctrl.catalog.Facets())
}

// GetProductByID returns a product by ID
// GET /api/v1/products/:id
func (ctrl *ProductController) GetProductByID(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Warn("Invalid product ID format", map[string]interface{}{
			"product_id": idStr,
		})
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid product ID")
		return
	}

	product, ok := ctrl.catalog.Find(id)
	if !ok {
		apperrors.NotFound(c, apperrors.ProductNotFound, "Product not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"product": product,
	})
}

func criteriaFromQuery(c *gin.Context) (catalog.Criteria, map[string]string) {
	criteria := catalog.CriteriaFromParam(c.QueryArray("category")...)
	criteria.Query = strings.TrimSpace(c.Query("q"))
	if sort := c.Query("sort"); sort != "" {
		criteria.Sort = catalog.SortKey(sort)
	}
	for _, value := range c.QueryArray("material") {
		if value = strings.ToLower(strings.TrimSpace(value)); value != "" {
			criteria.Materials = append(criteria.Materials, model.Material(value))
		}
	}

	fields := map[string]string{}
	for name, target := range map[string]*decimal.NullDecimal{
		"min_price": &criteria.MinPrice,
		"max_price": &criteria.MaxPrice,
	} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		value, err := decimal.NewFromString(raw)
		if err != nil {
			fields[name] = "must be a number"
			continue
		}
		*target = decimal.NewNullDecimal(value)
	}
	return criteria, fields
}

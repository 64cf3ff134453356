package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/ikkim/jewel-storefront/internal/app/model"
	"github.com/ikkim/jewel-storefront/internal/app/repository"
	"github.com/ikkim/jewel-storefront/internal/catalog"
	"github.com/ikkim/jewel-storefront/internal/report"
	"github.com/ikkim/jewel-storefront/internal/storage"
	"github.com/ikkim/jewel-storefront/pkg/logger"
	"github.com/shopspring/decimal"
)

var ErrReportUploadDisabled = errors.New("report upload is not configured")

// RecentOrdersLimit is how many orders the dashboard lists
const RecentOrdersLimit = 5

// Growth figures shown next to each stat card. They are fixed marketing
// numbers, not computed from history.
var DashboardGrowth = Growth{
	Revenue:   12.5,
	Orders:    8.3,
	Customers: 15.2,
	Products:  5.1,
}

type Growth struct {
	Revenue   float64 `json:"revenue"`
	Orders    float64 `json:"orders"`
	Customers float64 `json:"customers"`
	Products  float64 `json:"products"`
}

type CategoryShare struct {
	Category model.ProductCategory `json:"category"`
	Units    int                   `json:"units"`
	Percent  float64               `json:"percent"`
}

type DashboardStats struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalOrders    int             `json:"total_orders"`
	TotalCustomers int             `json:"total_customers"`
	TotalProducts  int             `json:"total_products"`
	Growth         Growth          `json:"growth"`
	CategoryShare  []CategoryShare `json:"category_share"`
	RecentOrders   []model.Order   `json:"recent_orders"`
}

type DashboardService interface {
	Stats(ctx context.Context, sessionID string) (*DashboardStats, error)
	// OrdersWorkbook renders the session's orders as XLSX bytes
	OrdersWorkbook(ctx context.Context, sessionID string) ([]byte, error)
	// ExportOrders uploads the workbook and returns a download link
	ExportOrders(ctx context.Context, sessionID string) (*storage.Uploaded, error)
}

type dashboardService struct {
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	catalog   *catalog.Catalog
	objects   storage.ObjectStorage
	now       func() time.Time
}

// NewDashboardService wires the dashboard. objects may be nil, in which case
// ExportOrders returns ErrReportUploadDisabled.
func NewDashboardService(
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	products *catalog.Catalog,
	objects storage.ObjectStorage,
) DashboardService {
	return &dashboardService{
		orderRepo: orderRepo,
		userRepo:  userRepo,
		catalog:   products,
		objects:   objects,
		now:       time.Now,
	}
}

func (s *dashboardService) Stats(ctx context.Context, sessionID string) (*DashboardStats, error) {
	orders, err := s.orderRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	users, err := s.userRepo.FindAll(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	revenue := decimal.Zero
	for _, order := range orders {
		revenue = revenue.Add(order.Total)
	}

	recent := orders
	if len(recent) > RecentOrdersLimit {
		recent = recent[:RecentOrdersLimit]
	}

	stats := &DashboardStats{
		TotalRevenue:   revenue,
		TotalOrders:    len(orders),
		TotalCustomers: len(users),
		TotalProducts:  s.catalog.Len(),
		Growth:         DashboardGrowth,
		CategoryShare:  categoryShare(orders),
		RecentOrders:   recent,
	}

	logger.Debug("Dashboard stats computed", map[string]interface{}{
		"session_id": sessionID,
		"orders":     stats.TotalOrders,
		"revenue":    revenue.String(),
	})
	return stats, nil
}

// categoryShare lists every category, largest share first
func categoryShare(orders []model.Order) []CategoryShare {
	units := model.UnitsPerCategory(orders)
	total := 0
	for _, n := range units {
		total += n
	}

	shares := make([]CategoryShare, 0, len(model.Categories))
	for _, category := range model.Categories {
		share := CategoryShare{Category: category, Units: units[category]}
		if total > 0 {
			share.Percent = decimal.NewFromInt(int64(share.Units) * 100).
				Div(decimal.NewFromInt(int64(total))).
				Round(1).
				InexactFloat64()
		}
		shares = append(shares, share)
	}
	sort.SliceStable(shares, func(i, j int) bool {
		return shares[i].Units > shares[j].Units
	})
	return shares
}

func (s *dashboardService) OrdersWorkbook(ctx context.Context, sessionID string) ([]byte, error) {
	orders, err := s.orderRepo.FindBySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	data, err := report.OrdersXLSX(orders)
	if err != nil {
		logger.Error("Failed to render orders report", err, map[string]interface{}{
			"session_id": sessionID,
		})
		return nil, err
	}
	return data, nil
}

func (s *dashboardService) ExportOrders(ctx context.Context, sessionID string) (*storage.Uploaded, error) {
	if s.objects == nil {
		return nil, ErrReportUploadDisabled
	}

	data, err := s.OrdersWorkbook(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	uploaded, err := s.objects.Upload(ctx, storage.ReportKey(sessionID, s.now()), data, report.ContentType)
	if err != nil {
		return nil, err
	}

	logger.Info("Orders report exported", map[string]interface{}{
		"session_id": sessionID,
		"key":        uploaded.Key,
	})
	return uploaded, nil
}

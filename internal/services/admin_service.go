package services

import (
	"context"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"shinyshoes/internal/domain"
	applog "shinyshoes/internal/log"
)

var weekdays = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// revenueShares spreads revenue over Thu..Sun. It is a display heuristic, not a
// per-day rollup of order timestamps.
var revenueShares = map[int]decimal.Decimal{
	3: decimal.RequireFromString("0.1"),
	4: decimal.RequireFromString("0.2"),
	5: decimal.RequireFromString("0.3"),
	6: decimal.RequireFromString("0.4"),
}

type DayBucket struct {
	Name   string          `json:"name"`
	Sales  float64         `json:"sales"`
	Amount decimal.Decimal `json:"-"`
}

type Overview struct {
	TotalRevenue float64        `json:"totalRevenue"`
	TotalOrders  int            `json:"totalOrders"`
	Sales        []DayBucket    `json:"sales"`
	Orders       []domain.Order `json:"orders"`
}

type AdminService struct {
	Orders OrderStore
	group  singleflight.Group
}

func NewAdminService(orders OrderStore) *AdminService {
	return &AdminService{Orders: orders}
}

// Overview never fails: an unreachable order store yields an empty dashboard.
func (s *AdminService) Overview(ctx context.Context) Overview {
	v, err, _ := s.group.Do("orders", func() (any, error) {
		return s.Orders.ListNewest(ctx)
	})
	var orders []domain.Order
	if err != nil {
		applog.Error(nil, "admin.orders.fetch.fail", err, nil)
	} else {
		orders = v.([]domain.Order)
	}
	if orders == nil {
		orders = []domain.Order{}
	}

	revenue := decimal.Zero
	for _, o := range orders {
		revenue = revenue.Add(decimal.NewFromFloat(o.Total()))
	}
	return Overview{
		TotalRevenue: revenue.Round(2).InexactFloat64(),
		TotalOrders:  len(orders),
		Sales:        RevenueBuckets(revenue),
		Orders:       orders,
	}
}

// RevenueBuckets returns Mon..Sun with 10/20/30/40% of revenue on the last four days.
func RevenueBuckets(revenue decimal.Decimal) []DayBucket {
	out := make([]DayBucket, len(weekdays))
	for i, name := range weekdays {
		out[i] = DayBucket{Name: name, Amount: decimal.Zero}
		if share, ok := revenueShares[i]; ok && revenue.IsPositive() {
			out[i].Amount = revenue.Mul(share)
		}
		out[i].Sales = out[i].Amount.InexactFloat64()
	}
	return out
}

package cart

import (
	"github.com/shopspring/decimal"
	"github.com/techieonvacation/ex-earning/internal/domain"
)

// State is a cart snapshot. TotalItems, Subtotal, Tax and Total are derived from
// Items and CouponDiscount and are only ever written together by the reducer.
type State struct {
	Items          []domain.CartLine `json:"items"`
	IsOpen         bool              `json:"isOpen"`
	TotalItems     int               `json:"totalItems"`
	Subtotal       decimal.Decimal   `json:"subtotal"`
	Tax            decimal.Decimal   `json:"tax"`
	Total          decimal.Decimal   `json:"total"`
	AppliedCoupon  *string           `json:"appliedCoupon"`
	CouponDiscount decimal.Decimal   `json:"couponDiscount"`
}

func InitialState() State {
	return State{
		Items:          []domain.CartLine{},
		Subtotal:       decimal.Zero,
		Tax:            decimal.Zero,
		Total:          decimal.Zero,
		CouponDiscount: decimal.Zero,
	}
}

func (s State) find(id string) (int, bool) {
	for i, item := range s.Items {
		if item.ID == id {
			return i, true
		}
	}
	return -1, false
}

// Clone returns a copy whose Items slice is not shared with s.
func (s State) Clone() State {
	items := make([]domain.CartLine, len(s.Items))
	copy(items, s.Items)
	s.Items = items
	if s.AppliedCoupon != nil {
		code := *s.AppliedCoupon
		s.AppliedCoupon = &code
	}
	return s
}

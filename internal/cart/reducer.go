package cart

import (
	"github.com/shopspring/decimal"
	"github.com/techieonvacation/ex-earning/internal/domain"
	"github.com/techieonvacation/ex-earning/internal/pricing"
)

// Reducer applies actions to cart state. Reduce is total: every action on every
// state yields a valid state, and the input state is never modified.
type Reducer struct {
	calc pricing.Calculator
}

func NewReducer(calc pricing.Calculator) Reducer {
	return Reducer{calc: calc}
}

func (r Reducer) Reduce(state State, action Action) State {
	next := state.Clone()

	switch a := action.(type) {
	case AddItem:
		if i, ok := next.find(a.Line.ID); ok {
			next.Items[i].Quantity += a.Line.Quantity
		} else {
			next.Items = append(next.Items, a.Line)
		}
		return r.withTotals(next)

	case RemoveItem:
		next.Items = without(next.Items, a.ID)
		return r.withTotals(next)

	case UpdateQuantity:
		if a.Quantity <= 0 {
			next.Items = without(next.Items, a.ID)
			return r.withTotals(next)
		}
		if i, ok := next.find(a.ID); ok {
			next.Items[i].Quantity = a.Quantity
		}
		return r.withTotals(next)

	case ClearCart:
		cleared := InitialState()
		cleared.IsOpen = next.IsOpen
		return cleared

	case SetCartOpen:
		next.IsOpen = a.Open
		return next

	case ApplyCoupon:
		code := a.Code
		next.AppliedCoupon = &code
		next.CouponDiscount = a.Discount
		next.Total = pricing.Total(next.Subtotal, next.Tax, a.Discount)
		return next

	case RemoveCoupon:
		next.AppliedCoupon = nil
		next.CouponDiscount = decimal.Zero
		next.Total = next.Subtotal.Add(next.Tax)
		return next

	case LoadCart:
		next.Items = make([]domain.CartLine, len(a.Items))
		copy(next.Items, a.Items)
		return r.withTotals(next)
	}

	return state
}

func (r Reducer) withTotals(s State) State {
	totals := r.calc.Compute(s.Items, s.CouponDiscount)
	s.TotalItems = totals.TotalItems
	s.Subtotal = totals.Subtotal
	s.Tax = totals.Tax
	s.Total = totals.Total
	return s
}

func without(items []domain.CartLine, id string) []domain.CartLine {
	out := items[:0]
	for _, item := range items {
		if item.ID != id {
			out = append(out, item)
		}
	}
	return out
}

package service

import (
	"strconv"
	"strings"
	"time"

	"order-dashboard/internal/detail"
	"order-dashboard/internal/model"
	"order-dashboard/internal/orders"
)

func orderRow(order model.Order, loc *time.Location) model.OrderRow {
	return model.OrderRow{
		OrderID:       order.OrderID,
		Date:          orders.FormatDate(order.PurchaseDate, loc),
		ItemCount:     len(order.Products),
		Items:         lineItems(order.Products),
		Shipping:      shippingSummary(order.ShippingAddress),
		PaymentMethod: order.PaymentMethod,
		Total:         orders.Total(order.Products).StringFixed(2),
	}
}

func lineItems(products []model.Product) []model.LineItemView {
	items := make([]model.LineItemView, len(products))
	for i, p := range products {
		item := model.LineItemView{
			Name:      p.DisplayName(),
			Brand:     p.Brand,
			ASIN:      p.ASIN,
			Quantity:  model.NotAvailable,
			Price:     model.NotAvailable,
			LineTotal: model.NotAvailable,
		}
		if p.Quantity != nil {
			item.Quantity = strconv.Itoa(*p.Quantity)
		}
		if p.Price.Valid {
			item.Price = p.Price.Decimal.StringFixed(2)
		}
		if total, ok := p.LineTotal(); ok {
			item.LineTotal = total.StringFixed(2)
		}
		items[i] = item
	}
	return items
}

func shippingSummary(addr model.ShippingAddress) model.ShippingSummary {
	return model.ShippingSummary{
		CityState:   joinNonEmpty(", ", addr.City, addr.StateOrRegion),
		PostalCode:  addr.PostalCode,
		CountryCode: addr.CountryCode,
	}
}

func detailView(snap detail.Snapshot, loc *time.Location) model.DetailView {
	view := model.DetailView{
		State:   snap.State.String(),
		OrderID: snap.OrderID,
		Loading: snap.Loading(),
	}

	if snap.State != detail.Shown {
		return view
	}
	if snap.Detail == nil {
		view.Message = model.NoDetailsAvailable
		return view
	}

	d := snap.Detail
	items := d.LineItems()
	dv := &model.OrderDetailView{
		OrderID:       d.OrderID,
		OrderDate:     orders.FormatDate(d.Date(), loc),
		CustomerName:  d.CustomerName,
		PaymentMethod: d.PaymentMethod,
		Items:         lineItems(items),
		Total:         orders.Total(items).StringFixed(2),
	}
	if dv.OrderID == "" {
		dv.OrderID = snap.OrderID
	}
	if dv.PaymentMethod == "" {
		dv.PaymentMethod = model.NotAvailable
	}
	if d.ShippingAddress != nil && len(d.ShippingAddress.Fields()) > 0 {
		summary := shippingSummary(*d.ShippingAddress)
		dv.Shipping = &summary
	} else {
		dv.ShippingMessage = model.NoShippingAvailable
	}

	view.Detail = dv
	return view
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}

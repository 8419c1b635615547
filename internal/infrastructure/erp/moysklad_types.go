package erp

// moyskladOrderRequest is the customer order payload sent to Moysklad.
// Prices are in kopek-like minor units; the adapter converts from whole
// tenge on the way out.
type moyskladOrderRequest struct {
	Name         string              `json:"name"`
	Organization moyskladMetaRef     `json:"organization"`
	Description  string              `json:"description,omitempty"`
	Positions    []moyskladOrderLine `json:"positions"`
	Attributes   []moyskladAttribute `json:"attributes,omitempty"`
}

// moyskladOrderLine is one position in a customer order
type moyskladOrderLine struct {
	Quantity   float64         `json:"quantity"`
	Price      int64           `json:"price"`
	Assortment moyskladMetaRef `json:"assortment"`
}

// moyskladMetaRef wraps Moysklad's entity reference envelope
type moyskladMetaRef struct {
	Meta moyskladMeta `json:"meta"`
}

// moyskladMeta identifies an entity by href and type
type moyskladMeta struct {
	Href string `json:"href"`
	Type string `json:"type"`
}

// moyskladAttribute is a free-form order attribute (phone, address, comment)
type moyskladAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// moyskladOrderResponse is the acknowledgement for a created customer order
type moyskladOrderResponse struct {
	ID   string       `json:"id"`
	Name string       `json:"name"`
	Meta moyskladMeta `json:"meta"`
}

// moyskladErrorResponse is the error envelope returned on 4xx/5xx
type moyskladErrorResponse struct {
	Errors []moyskladError `json:"errors"`
}

// moyskladError is one error entry
type moyskladError struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// moyskladStockResponse is the stock report envelope
type moyskladStockResponse struct {
	Rows []moyskladStockRow `json:"rows"`
}

// moyskladStockRow reports remaining stock for one article
type moyskladStockRow struct {
	Article string  `json:"article"`
	Stock   float64 `json:"stock"`
}

// moyskladOrderSearchResponse is the envelope for an order lookup by name
type moyskladOrderSearchResponse struct {
	Rows []moyskladOrderResponse `json:"rows"`
}

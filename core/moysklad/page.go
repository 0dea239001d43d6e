package moysklad

import "encoding/json"

// Collections synchronized from the API, relative to the base URL.
const (
	CollectionCounterparty  = "entity/counterparty"
	CollectionStore         = "entity/store"
	CollectionUOM           = "entity/uom"
	CollectionProductFolder = "entity/productfolder"
	CollectionProduct       = "entity/product"
	CollectionStockByStore  = "report/stock/bystore"
)

// Page is one page of a paginated collection. Rows are kept raw; decoding
// them is the normalizer's job.
type Page struct {
	Meta PageMeta          `json:"meta"`
	Rows []json.RawMessage `json:"rows"`
}

// PageMeta carries the paging cursor of a page.
type PageMeta struct {
	Href     string `json:"href"`
	NextHref string `json:"nextHref,omitempty"`
	Size     int    `json:"size"`
	Limit    int    `json:"limit"`
	Offset   int    `json:"offset"`
}

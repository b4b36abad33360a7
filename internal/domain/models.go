// Package domain defines the entities persisted by the service, lists and
// their items, together with the error taxonomy shared by the data access
// and HTTP layers.
//
// The types carry no ORM tags: rows are mapped by hand in the repo package
// so the column set stays explicit and fixed.
package domain

// List is a named collection owning zero or more items.
//
// Fields:
//   - ID: server-assigned from the list sequence (first value 101).
//   - Name: user-supplied, not unique.
//   - Deleted: reserved soft-delete marker; lists are never removed by the API.
type List struct {
	ID      int64  `json:"id"      example:"101"`
	Name    string `json:"name"    example:"groceries"`
	Deleted bool   `json:"deleted" example:"false"`
}

// ListItem is a named entry belonging to exactly one list.
//
// Fields:
//   - ID: server-assigned from the item sequence (first value 101).
//   - Name: user-supplied, not unique.
//   - ListID: the owning list; enforced by a foreign key.
//   - Deleted: true once the item has been removed (soft delete).
type ListItem struct {
	ID      int64  `json:"id"      example:"101"`
	Name    string `json:"name"    example:"milk"`
	ListID  int64  `json:"list_id" example:"101"`
	Deleted bool   `json:"deleted" example:"false"`
}

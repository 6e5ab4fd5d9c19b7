package repository

import (
	"context"
	"database/sql"
	"math"
	"strings"

	"github.com/atelier/discography-api/internal/model"
)

// OrderRepo owns the order and order_items tables.  Order creation runs the
// two-phase validate-then-commit algorithm: every cart line is validated
// against the catalog before any mutation, the total is recomputed from
// authoritative prices, and the order row plus all item rows are written in
// a single transaction.  Partial state is never observable.
type OrderRepo struct {
	db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle for callers that need to share it.
func (r *OrderRepo) DB() *sql.DB { return r.db }

// OrderItemInput is one cart line as submitted by the client.  Only the
// album id and quantity are accepted; prices always come from the catalog.
type OrderItemInput struct {
	AlbumID  uint64 `json:"id"`
	Quantity int    `json:"quantity"`
}

// querier is satisfied by both *sql.DB and *sql.Tx so read helpers can run
// inside or outside a transaction.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Create validates the cart and atomically persists the order with its line
// items.  Validation errors (ErrEmptyCart, ErrInvalidQuantity,
// ErrAlbumNotFound, ErrAlbumNotForSale) are returned before any write.  The
// total is the sum of quantity times the authoritative catalog price at
// commit time; client-supplied totals are never consulted.  On any failure
// inside the transaction everything is rolled back.
//
// No row lock is taken on albums between validation and commit, so price or
// availability may change in that window; the in-transaction price re-read
// keeps the snapshot at worst as fresh as the commit.
func (r *OrderRepo) Create(ctx context.Context, userID uint64, items []OrderItemInput) (*model.Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	// Validation phase: no mutation.  Every line must reference an existing,
	// purchasable album and carry a positive quantity; if any line fails the
	// whole order is rejected.
	for _, it := range items {
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		var isSelling bool
		var cost float64
		err := r.db.QueryRowContext(ctx,
			"SELECT is_selling, cost FROM albums WHERE id=? LIMIT 1", it.AlbumID).
			Scan(&isSelling, &cost)
		if err == sql.ErrNoRows {
			return nil, ErrAlbumNotFound
		}
		if err != nil {
			return nil, err
		}
		if !isSelling || cost <= 0 {
			return nil, ErrAlbumNotForSale
		}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Commit phase: re-fetch the authoritative price per line inside the
	// transaction, accumulate the total and snapshot each unit price.
	type line struct {
		albumID  uint64
		quantity int
		price    float64
	}
	lines := make([]line, 0, len(items))
	total := 0.0
	for _, it := range items {
		var cost float64
		err := tx.QueryRowContext(ctx,
			"SELECT cost FROM albums WHERE id=? LIMIT 1", it.AlbumID).Scan(&cost)
		if err == sql.ErrNoRows {
			return nil, ErrAlbumNotFound
		}
		if err != nil {
			return nil, err
		}
		lines = append(lines, line{albumID: it.AlbumID, quantity: it.Quantity, price: cost})
		total += cost * float64(it.Quantity)
	}
	total = math.Round(total*100) / 100

	res, err := tx.ExecContext(ctx,
		"INSERT INTO orders (user_id, total_amount, status) VALUES (?,?,?)",
		userID, total, model.StatusPending)
	if err != nil {
		return nil, err
	}
	orderID, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}

	// Bulk insert all item rows in a single statement.
	q := "INSERT INTO order_items (order_id, album_id, quantity, unit_price) VALUES "
	args := make([]any, 0, len(lines)*4)
	for i, ln := range lines {
		if i > 0 {
			q += ","
		}
		q += "(?,?,?,?)"
		args = append(args, orderID, ln.albumID, ln.quantity, ln.price)
	}
	if _, err := tx.ExecContext(ctx, q, args...); err != nil {
		return nil, err
	}

	// Query back the full rows so the response carries DB-generated
	// timestamps and item ids.
	order, err := getOrder(ctx, tx, uint64(orderID))
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	committed = true
	return order, nil
}

// GetByID returns an order with its items, or ErrOrderNotFound.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (*model.Order, error) {
	return getOrder(ctx, r.db, id)
}

func getOrder(ctx context.Context, q querier, id uint64) (*model.Order, error) {
	var o model.Order
	err := q.QueryRowContext(ctx,
		"SELECT id, user_id, total_amount, status, created_at FROM orders WHERE id=? LIMIT 1", id).
		Scan(&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := itemsForOrders(ctx, q, []uint64{o.ID})
	if err != nil {
		return nil, err
	}
	o.Items = items[o.ID]
	return &o, nil
}

// itemsForOrders loads the line items for a set of orders in one query,
// keyed by order id.  The album join is LEFT so historical orders survive
// catalog deletions.
func itemsForOrders(ctx context.Context, q querier, ids []uint64) (map[uint64][]model.OrderItem, error) {
	out := make(map[uint64][]model.OrderItem, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
		out[id] = []model.OrderItem{}
	}
	query := `SELECT oi.id, oi.order_id, oi.album_id, oi.quantity, oi.unit_price, a.name, a.artist_name
			  FROM order_items oi
			  LEFT JOIN albums a ON a.id = oi.album_id
			  WHERE oi.order_id IN (` + strings.Join(placeholders, ",") + `)
			  ORDER BY oi.order_id, oi.id`
	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var it model.OrderItem
		var albumName, artistName sql.NullString
		if err := rows.Scan(&it.ID, &it.OrderID, &it.AlbumID, &it.Quantity, &it.UnitPrice, &albumName, &artistName); err != nil {
			return nil, err
		}
		it.AlbumName = albumName.String
		it.ArtistName = artistName.String
		out[it.OrderID] = append(out[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListByUser returns all orders owned by a user, newest first, items nested.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, total_amount, status, created_at
		 FROM orders WHERE user_id=? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(ctx, r.db, rows, false)
}

// ListAll returns every order joined with its owner's email, newest first.
// Admin surface only.
func (r *OrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT o.id, o.user_id, o.total_amount, o.status, o.created_at, u.email
		 FROM orders o JOIN users u ON u.id = o.user_id
		 ORDER BY o.created_at DESC, o.id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectOrders(ctx, r.db, rows, true)
}

func collectOrders(ctx context.Context, q querier, rows *sql.Rows, withEmail bool) ([]model.Order, error) {
	orders := make([]model.Order, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		var o model.Order
		dest := []any{&o.ID, &o.UserID, &o.TotalAmount, &o.Status, &o.CreatedAt}
		if withEmail {
			dest = append(dest, &o.UserEmail)
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, err
		}
		o.Items = []model.OrderItem{}
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}
	ids := make([]uint64, 0, len(orders))
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	items, err := itemsForOrders(ctx, q, ids)
	if err != nil {
		return nil, err
	}
	for id, its := range items {
		orders[index[id]].Items = its
	}
	return orders, nil
}

// UpdateStatus sets the status of an order and returns the refreshed order
// with its items.  The caller validates and normalizes the status value
// beforehand; this method only rejects unknown order ids.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status string) (*model.Order, error) {
	var one int
	if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM orders WHERE id=?", id).Scan(&one); err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	if _, err := r.db.ExecContext(ctx, "UPDATE orders SET status=? WHERE id=?", status, id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

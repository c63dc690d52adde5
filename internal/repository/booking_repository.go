package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/quickshow/quickshow-api/internal/model"
)

// ErrBookingNotFound indicates that a booking was not located in the DB.
var ErrBookingNotFound = errors.New("booking not found")

// BookingRepo provides CRUD operations for bookings and their seats.
// A booking groups one or more seat labels for a showtime and user; the
// labels live in the booking_seats table, which carries a unique key on
// (showtime_id, seat_label) so the database itself rejects a second
// confirmed claim on the same seat. All timestamps are stored in UTC.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a new BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// DB exposes the underlying sql.DB for callers that need to begin
// transactions spanning multiple repositories.
func (r *BookingRepo) DB() *sql.DB { return r.db }

// OccupiedSeats returns the union of seat labels claimed by CONFIRMED
// bookings for a showtime. Cancelled and refunded bookings never occupy:
// their booking_seats rows are removed on cancellation, and the status
// predicate here guards against any stragglers.
func (r *BookingRepo) OccupiedSeats(ctx context.Context, showtimeID uint64) ([]string, error) {
	const q = `SELECT bs.seat_label
	           FROM booking_seats bs
	           JOIN bookings b ON b.id = bs.booking_id
	           WHERE bs.showtime_id = ? AND b.status = ?
	           ORDER BY bs.seat_label`
	return r.seatLabels(ctx, r.db.QueryContext, q, showtimeID, model.BookingConfirmed)
}

// OccupiedSeatsTx is OccupiedSeats inside a transaction, locking the
// matching rows with FOR UPDATE so a concurrent booking of the same
// showtime serializes against this one until commit.
func (r *BookingRepo) OccupiedSeatsTx(ctx context.Context, tx *sql.Tx, showtimeID uint64) ([]string, error) {
	const q = `SELECT bs.seat_label
	           FROM booking_seats bs
	           JOIN bookings b ON b.id = bs.booking_id
	           WHERE bs.showtime_id = ? AND b.status = ?
	           ORDER BY bs.seat_label
	           FOR UPDATE`
	return r.seatLabels(ctx, tx.QueryContext, q, showtimeID, model.BookingConfirmed)
}

type queryFunc func(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)

func (r *BookingRepo) seatLabels(ctx context.Context, query queryFunc, q string, args ...interface{}) ([]string, error) {
	rows, err := query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	labels := make([]string, 0)
	for rows.Next() {
		var l string
		if err := rows.Scan(&l); err != nil {
			return nil, err
		}
		labels = append(labels, l)
	}
	return labels, rows.Err()
}

// CreateTx inserts a booking and its seat rows within an existing
// transaction, populating the generated ID and creation timestamp on the
// provided record. A duplicate-key failure on booking_seats means another
// transaction claimed one of the seats first and is reported as
// ErrSeatTaken. The caller must commit or roll back.
func (r *BookingRepo) CreateTx(ctx context.Context, tx *sql.Tx, b *model.Booking) error {
	const q = `INSERT INTO bookings
	           (user_id, showtime_id, total_cents, status, payment_status, checkin_code)
	           VALUES (?, ?, ?, ?, ?, ?)`
	res, err := tx.ExecContext(ctx, q,
		b.UserID, b.ShowtimeID, b.TotalCents, b.Status, b.PaymentStatus, b.CheckinCode)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)

	if len(b.Seats) > 0 {
		insert := `INSERT INTO booking_seats (booking_id, showtime_id, seat_label) VALUES `
		args := make([]interface{}, 0, len(b.Seats)*3)
		for i, seat := range b.Seats {
			if i > 0 {
				insert += ","
			}
			insert += "(?, ?, ?)"
			args = append(args, b.ID, b.ShowtimeID, seat)
		}
		if _, err := tx.ExecContext(ctx, insert, args...); err != nil {
			if strings.Contains(strings.ToLower(err.Error()), "1062") {
				return ErrSeatTaken
			}
			return err
		}
	}

	// Query back the row to populate the DB-assigned creation timestamp.
	return tx.QueryRowContext(ctx,
		`SELECT created_at FROM bookings WHERE id = ?`, b.ID).Scan(&b.CreatedAt)
}

func scanBooking(row interface{ Scan(...interface{}) error }) (model.Booking, error) {
	var (
		b           model.Booking
		checkedInAt sql.NullTime
	)
	err := row.Scan(
		&b.ID, &b.UserID, &b.ShowtimeID, &b.TotalCents, &b.Status, &b.PaymentStatus,
		&b.CheckinCode, &b.CheckedIn, &checkedInAt, &b.CreatedAt)
	if err != nil {
		return model.Booking{}, err
	}
	if checkedInAt.Valid {
		t := checkedInAt.Time
		b.CheckedInAt = &t
	}
	return b, nil
}

const bookingCols = `id, user_id, showtime_id, total_cents, status, payment_status,
	checkin_code, checked_in, checked_in_at, created_at`

// GetByID returns a booking with its seat labels, or ErrBookingNotFound.
func (r *BookingRepo) GetByID(ctx context.Context, id uint64) (model.Booking, error) {
	b, err := scanBooking(r.db.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, ErrBookingNotFound
		}
		return model.Booking{}, err
	}
	b.Seats, err = r.seatLabels(ctx, r.db.QueryContext,
		`SELECT seat_label FROM booking_seats WHERE booking_id = ? ORDER BY seat_label`, b.ID)
	return b, err
}

// GetByCodeTx looks a booking up by its check-in code inside a
// transaction, locking the row so concurrent check-ins with the same code
// serialize. Returns ErrBookingNotFound for an unknown code.
func (r *BookingRepo) GetByCodeTx(ctx context.Context, tx *sql.Tx, code string) (model.Booking, error) {
	b, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE checkin_code = ? FOR UPDATE`, code))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, ErrBookingNotFound
		}
		return model.Booking{}, err
	}
	b.Seats, err = r.seatLabels(ctx, tx.QueryContext,
		`SELECT seat_label FROM booking_seats WHERE booking_id = ? ORDER BY seat_label`, b.ID)
	return b, err
}

// MarkCheckedInTx consumes a booking's check-in code: sets the flag and
// timestamp. The transition is one-way; there is no API path that clears
// the flag.
func (r *BookingRepo) MarkCheckedInTx(ctx context.Context, tx *sql.Tx, id uint64, at time.Time) error {
	_, err := tx.ExecContext(ctx,
		`UPDATE bookings SET checked_in = 1, checked_in_at = ? WHERE id = ?`, at, id)
	return err
}

// GetForUpdateTx loads a booking with its seats inside a transaction,
// locking the booking row. Used by the cancellation path.
func (r *BookingRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (model.Booking, error) {
	b, err := scanBooking(tx.QueryRowContext(ctx,
		`SELECT `+bookingCols+` FROM bookings WHERE id = ? FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Booking{}, ErrBookingNotFound
		}
		return model.Booking{}, err
	}
	b.Seats, err = r.seatLabels(ctx, tx.QueryContext,
		`SELECT seat_label FROM booking_seats WHERE booking_id = ? ORDER BY seat_label`, b.ID)
	return b, err
}

// CancelTx marks a booking CANCELLED and deletes its booking_seats rows so
// the (showtime, seat) unique key frees the seats for other customers.
func (r *BookingRepo) CancelTx(ctx context.Context, tx *sql.Tx, id uint64) error {
	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET status = ? WHERE id = ?`, model.BookingCancelled, id); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `DELETE FROM booking_seats WHERE booking_id = ?`, id)
	return err
}

// BookingDetail is a booking enriched with show, movie and theater
// information for display to customers.
type BookingDetail struct {
	ID              uint64     `json:"id"`
	ShowtimeID      uint64     `json:"showtime_id"`
	MovieTitle      string     `json:"movie_title"`
	PosterURL       string     `json:"poster_url"`
	TheaterName     string     `json:"theater_name"`
	TheaterLocation string     `json:"theater_location"`
	ScreenName      string     `json:"screen_name"`
	ShowDate        string     `json:"show_date"`
	ShowTime        string     `json:"show_time"`
	Seats           []string   `json:"seats"`
	TotalCents      uint32     `json:"total_cents"`
	Status          string     `json:"status"`
	PaymentStatus   string     `json:"payment_status"`
	CheckinCode     string     `json:"checkin_code"`
	CheckedIn       bool       `json:"checked_in"`
	CheckedInAt     *time.Time `json:"checked_in_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

const bookingDetailQuery = `SELECT b.id, b.showtime_id, m.title, m.poster_url,
	       t.name, t.location, sc.name,
	       st.show_date, st.show_time,
	       b.total_cents, b.status, b.payment_status,
	       b.checkin_code, b.checked_in, b.checked_in_at, b.created_at
	FROM bookings b
	JOIN showtimes st ON st.id = b.showtime_id
	JOIN movies m ON m.id = st.movie_id
	JOIN theaters t ON t.id = st.theater_id
	JOIN screens sc ON sc.id = st.screen_id`

func scanBookingDetail(row interface{ Scan(...interface{}) error }) (BookingDetail, error) {
	var (
		d           BookingDetail
		checkedInAt sql.NullTime
	)
	err := row.Scan(
		&d.ID, &d.ShowtimeID, &d.MovieTitle, &d.PosterURL,
		&d.TheaterName, &d.TheaterLocation, &d.ScreenName,
		&d.ShowDate, &d.ShowTime,
		&d.TotalCents, &d.Status, &d.PaymentStatus,
		&d.CheckinCode, &d.CheckedIn, &checkedInAt, &d.CreatedAt)
	if err != nil {
		return BookingDetail{}, err
	}
	if checkedInAt.Valid {
		t := checkedInAt.Time
		d.CheckedInAt = &t
	}
	d.Seats = []string{}
	return d, nil
}

// GetDetailForUser returns one enriched booking belonging to the given
// user. Ownership is enforced in the query, so a foreign booking id
// surfaces as ErrBookingNotFound rather than leaking existence.
func (r *BookingRepo) GetDetailForUser(ctx context.Context, bookingID, userID uint64) (*BookingDetail, error) {
	d, err := scanBookingDetail(r.db.QueryRowContext(ctx,
		bookingDetailQuery+` WHERE b.id = ? AND b.user_id = ?`, bookingID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	d.Seats, err = r.seatLabels(ctx, r.db.QueryContext,
		`SELECT seat_label FROM booking_seats WHERE booking_id = ? ORDER BY seat_label`, d.ID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByUser returns all bookings of a user, newest first, with seats
// populated in a single follow-up query.
func (r *BookingRepo) ListByUser(ctx context.Context, userID uint64) ([]BookingDetail, error) {
	rows, err := r.db.QueryContext(ctx,
		bookingDetailQuery+` WHERE b.user_id = ? ORDER BY b.created_at DESC, b.id DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]BookingDetail, 0)
	index := make(map[uint64]int)
	for rows.Next() {
		d, err := scanBookingDetail(rows)
		if err != nil {
			return nil, err
		}
		index[d.ID] = len(details)
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(details) == 0 {
		return details, nil
	}

	// Populate seats for all bookings in one query.
	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	seatQ := `SELECT booking_id, seat_label FROM booking_seats
	          WHERE booking_id IN (` + strings.Join(placeholders, ",") + `)
	          ORDER BY booking_id, seat_label`
	srows, err := r.db.QueryContext(ctx, seatQ, ids...)
	if err != nil {
		return nil, err
	}
	defer srows.Close()
	for srows.Next() {
		var (
			bid   uint64
			label string
		)
		if err := srows.Scan(&bid, &label); err != nil {
			return nil, err
		}
		if idx, ok := index[bid]; ok {
			details[idx].Seats = append(details[idx].Seats, label)
		}
	}
	return details, srows.Err()
}

// CheckinDetail extends BookingDetail with the customer's identity for the
// operator console.
type CheckinDetail struct {
	BookingDetail
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
}

// GetCheckinDetail returns the enriched view shown to the operator after a
// successful check-in.
func (r *BookingRepo) GetCheckinDetail(ctx context.Context, bookingID uint64) (*CheckinDetail, error) {
	const q = `SELECT b.id, b.showtime_id, m.title, m.poster_url,
	                  t.name, t.location, sc.name,
	                  st.show_date, st.show_time,
	                  b.total_cents, b.status, b.payment_status,
	                  b.checkin_code, b.checked_in, b.checked_in_at, b.created_at,
	                  u.name, u.email
	           FROM bookings b
	           JOIN showtimes st ON st.id = b.showtime_id
	           JOIN movies m ON m.id = st.movie_id
	           JOIN theaters t ON t.id = st.theater_id
	           JOIN screens sc ON sc.id = st.screen_id
	           JOIN users u ON u.id = b.user_id
	           WHERE b.id = ?`
	var (
		d           CheckinDetail
		checkedInAt sql.NullTime
	)
	err := r.db.QueryRowContext(ctx, q, bookingID).Scan(
		&d.ID, &d.ShowtimeID, &d.MovieTitle, &d.PosterURL,
		&d.TheaterName, &d.TheaterLocation, &d.ScreenName,
		&d.ShowDate, &d.ShowTime,
		&d.TotalCents, &d.Status, &d.PaymentStatus,
		&d.CheckinCode, &d.CheckedIn, &checkedInAt, &d.CreatedAt,
		&d.UserName, &d.UserEmail)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if checkedInAt.Valid {
		t := checkedInAt.Time
		d.CheckedInAt = &t
	}
	d.Seats, err = r.seatLabels(ctx, r.db.QueryContext,
		`SELECT seat_label FROM booking_seats WHERE booking_id = ? ORDER BY seat_label`, d.ID)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

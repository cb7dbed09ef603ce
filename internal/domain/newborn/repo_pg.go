package newborn

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/careward/careward/internal/platform/db"
)

type queryable interface {
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
}

type repoPG struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) Repository {
	return &repoPG{pool: pool}
}

func (r *repoPG) conn(ctx context.Context) queryable {
	if tx := db.TxFromContext(ctx); tx != nil {
		return tx
	}
	if c := db.ConnFromContext(ctx); c != nil {
		return c
	}
	return r.pool
}

const recordCols = `id, order_id, admission_id, mother_name, father_name, newborn_sex, born_at,
	place_of_birth, weight_grams, length_cm, attendant_name, remarks, submitted_by, created_at`

func scanRecord(row pgx.Row) (*BirthCertificateRecord, error) {
	var rec BirthCertificateRecord
	err := row.Scan(
		&rec.ID, &rec.OrderID, &rec.AdmissionID, &rec.MotherName, &rec.FatherName,
		&rec.NewbornSex, &rec.BornAt, &rec.PlaceOfBirth, &rec.WeightGrams,
		&rec.LengthCm, &rec.AttendantName, &rec.Remarks, &rec.SubmittedBy, &rec.CreatedAt,
	)
	return &rec, err
}

func (r *repoPG) Create(ctx context.Context, rec *BirthCertificateRecord) error {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := r.conn(ctx).Exec(ctx, `
		INSERT INTO birth_certificate_record (
			id, order_id, admission_id, mother_name, father_name, newborn_sex,
			born_at, place_of_birth, weight_grams, length_cm, attendant_name,
			remarks, submitted_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		rec.ID, rec.OrderID, rec.AdmissionID, rec.MotherName, rec.FatherName,
		rec.NewbornSex, rec.BornAt, rec.PlaceOfBirth, rec.WeightGrams,
		rec.LengthCm, rec.AttendantName, rec.Remarks, rec.SubmittedBy)
	return err
}

func (r *repoPG) GetByOrder(ctx context.Context, orderID uuid.UUID) (*BirthCertificateRecord, error) {
	return scanRecord(r.conn(ctx).QueryRow(ctx,
		`SELECT `+recordCols+` FROM birth_certificate_record WHERE order_id = $1`, orderID))
}

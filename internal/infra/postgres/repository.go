package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/open-climate-tech/firecam/internal/domain/entity"
)

type LabelRepository struct {
	pool *pgxpool.Pool
}

func NewLabelRepository(pool *pgxpool.Pool) *LabelRepository {
	return &LabelRepository{pool: pool}
}

// InsertBBox appends one annotation row. Coordinates arrive as the
// client sent them; the server casts them into the integer columns.
func (r *LabelRepository) InsertBBox(ctx context.Context, label *entity.BBoxLabel) error {
	// Coordinates are bound as text and cast server-side, so whatever
	// the client sent reaches the database unchanged and a non-numeric
	// value surfaces as an insert failure rather than a silent rewrite.
	query := `
		INSERT INTO bbox (
			ImageName, MinX, MinY, MaxX, MaxY, InsertionTime, UserID, Notes
		) VALUES ($1,$2::text::int,$3::text::int,$4::text::int,$5::text::int,$6,$7,$8)`

	_, err := r.pool.Exec(ctx, query,
		label.ImageName, label.MinX, label.MinY, label.MaxX, label.MaxY,
		label.InsertionTime, label.UserID, label.Notes,
	)
	if err != nil {
		return fmt.Errorf("insert bbox label: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"
	"logindash/internal/domain/login"
)

const (
	listLoginsQuery = `
		SELECT user_id, device_type, masked_ip, masked_device_id,
		       COALESCE(locale, ''), COALESCE(app_version, ''), create_date
		FROM user_logins
		ORDER BY create_date DESC
		LIMIT $1 OFFSET $2`

	// повторные входы: все строки, кроме первой, для каждой пары (masked_ip, masked_device_id)
	listDuplicateLoginsQuery = `
		WITH duplicate_records AS (
			SELECT *, ROW_NUMBER() OVER (
				PARTITION BY masked_ip, masked_device_id ORDER BY create_date
			) AS rn
			FROM user_logins
		)
		SELECT user_id, device_type, masked_ip, masked_device_id,
		       COALESCE(locale, ''), COALESCE(app_version, ''), create_date
		FROM duplicate_records
		WHERE rn > 1
		ORDER BY create_date DESC
		LIMIT $1 OFFSET $2`
)

const insertColumns = 6

type LoginRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewLoginRepository(storage *Storage, log *slog.Logger) *LoginRepository {
	return &LoginRepository{
		pool: storage.Pool(),
		log:  log.With("component", "login_repository"),
	}
}

func (r *LoginRepository) List(ctx context.Context, filter login.Filter) ([]login.Login, error) {
	query, args := listQuery(filter)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to list logins",
			"limit", filter.Limit, "page", filter.Page, "error", err)
		return nil, fmt.Errorf("list logins: %w", err)
	}
	defer rows.Close()

	return scanLogins(rows)
}

// InsertBatch вставляет пачку одним INSERT, create_date ставит БД
func (r *LoginRepository) InsertBatch(ctx context.Context, logins []login.Login) error {
	if len(logins) == 0 {
		return nil
	}

	query, args := insertQuery(logins)
	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		r.log.Error("failed to insert logins", "count", len(logins), "error", err)
		return fmt.Errorf("insert logins: %w", err)
	}

	r.log.Debug("logins inserted", "count", len(logins))
	return nil
}

func insertQuery(logins []login.Login) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO user_logins (user_id, device_type, masked_ip, masked_device_id, locale, app_version, create_date) VALUES ")

	args := make([]any, 0, len(logins)*insertColumns)
	for i, l := range logins {
		if i > 0 {
			b.WriteString(", ")
		}
		n := i * insertColumns
		fmt.Fprintf(&b, "($%d, $%d, $%d, $%d, $%d, $%d, NOW() AT TIME ZONE 'UTC')", n+1, n+2, n+3, n+4, n+5, n+6)
		args = append(args, l.UserID, l.DeviceType, l.IP, l.DeviceID, l.Locale, l.AppVersion)
	}

	return b.String(), args
}

func listQuery(filter login.Filter) (string, []any) {
	args := []any{filter.Limit, filter.Offset()}
	if filter.GroupDuplicates {
		return listDuplicateLoginsQuery, args
	}
	return listLoginsQuery, args
}

func scanLogins(rows pgx.Rows) ([]login.Login, error) {
	logins := make([]login.Login, 0)
	for rows.Next() {
		var l login.Login
		err := rows.Scan(&l.UserID, &l.DeviceType, &l.IP, &l.DeviceID,
			&l.Locale, &l.AppVersion, &l.CreateDate)
		if err != nil {
			return nil, fmt.Errorf("scan login: %w", err)
		}
		logins = append(logins, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate logins: %w", err)
	}
	return logins, nil
}

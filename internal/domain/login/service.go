package login

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"
)

type Servicer interface {
	List(ctx context.Context, filter Filter) ([]Login, error)
}

type Service struct {
	repo   Repository
	cipher *Cipher
	log    *slog.Logger
}

func NewService(repo Repository, c *Cipher, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cipher: c,
		log:    log.With(slog.String("component", "login_service")),
	}
}

// List возвращает страницу записей. Если filter.IsEncrypted == false, ip и device_id расшифровываются.
// Результат никогда не nil, пустая страница кодируется как [].
func (s *Service) List(ctx context.Context, filter Filter) ([]Login, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}

	logins, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list logins: %w", err)
	}
	if logins == nil {
		logins = []Login{}
	}

	if !filter.IsEncrypted {
		for i := range logins {
			if err := s.reveal(&logins[i]); err != nil {
				s.log.Error("failed to decrypt login", slog.Any("error", err))
				return nil, err
			}
		}
	}

	s.log.Debug("logins listed",
		slog.Int("count", len(logins)),
		slog.Int("limit", filter.Limit),
		slog.Int("page", filter.Page),
		slog.Bool("encrypted", filter.IsEncrypted),
		slog.Bool("group_duplicates", filter.GroupDuplicates),
	)

	return logins, nil
}

func (s *Service) reveal(l *Login) error {
	for _, field := range []**string{&l.IP, &l.DeviceID} {
		if *field == nil {
			continue
		}
		plain, err := s.cipher.Decrypt(**field)
		if err != nil {
			return err
		}
		*field = &plain
	}
	return nil
}

package service

import (
	"context"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	domainauth "github.com/aerolink/charter-ops/internal/domain/auth"
	"github.com/aerolink/charter-ops/internal/domain/model"
	apperrors "github.com/aerolink/charter-ops/internal/errors"
	"github.com/aerolink/charter-ops/internal/ports"
)

// CrewService lists the operation's crew roster.
type CrewService struct {
	crew ports.CrewRepository
}

// NewCrewService constructs a new CrewService.
func NewCrewService(crew ports.CrewRepository) *CrewService {
	return &CrewService{crew: crew}
}

// List returns the profiles of users holding a crew role, sorted by full
// name under Brazilian Portuguese collation. Sorting happens here rather
// than in SQL because the database's collation is not guaranteed to be
// pt-BR.
func (s *CrewService) List(ctx context.Context) ([]*model.CrewMember, error) {
	members, err := s.crew.ListByRoles(ctx, domainauth.CrewRoles())
	if err != nil {
		return nil, apperrors.MapDBError(err)
	}

	// collate.Collator is not safe for concurrent use; build one per call.
	cl := collate.New(language.BrazilianPortuguese, collate.IgnoreCase)
	sort.SliceStable(members, func(i, j int) bool {
		if c := cl.CompareString(members[i].FullName, members[j].FullName); c != 0 {
			return c < 0
		}
		return members[i].Email < members[j].Email
	})

	if members == nil {
		members = []*model.CrewMember{}
	}
	return members, nil
}

package service

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

// filteredIDs builds the list/search query shared by studies and
// questions: case-insensitive substring match over title and body, plus
// an exact tag-name filter through the join table. Empty parameters
// mean "no filter". IDs come back ordered by registered_date DESC.
func (s *General) filteredIDs(table, joinTable, joinFK, search, tag string) ([]uint64, error) {
	b := squirrel.
		Select("DISTINCT e.id", "e.registered_date").From(table + " e").
		OrderBy("e.registered_date DESC")

	if tag != "" {
		b = b.Join(joinTable + " et ON et." + joinFK + " = e.id").
			Join("tags t ON t.id = et.tag_id").
			Where(squirrel.Eq{"t.name": tag})
	}
	if search != "" {
		like := "%" + strings.ToLower(search) + "%"
		b = b.Where(squirrel.Or{
			squirrel.Expr("LOWER(e.title) LIKE ?", like),
			squirrel.Expr("LOWER(e.body) LIKE ?", like),
		})
	}

	sql, args, err := b.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "build sql")
	}

	rows := make([]struct{ ID uint64 }, 0)
	res := s.db.Raw(sql, args...).Scan(&rows)
	if res.Error != nil {
		return nil, errors.Wrap(res.Error, "scan ids")
	}

	ids := make([]uint64, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	return ids, nil
}

// pageOf slices ids down to the requested 1-based page.
func (s *General) pageOf(ids []uint64, page int) []uint64 {
	if page < 1 {
		page = 1
	}
	size := s.cfg.PageSize
	start := (page - 1) * size
	if start >= len(ids) {
		return nil
	}
	end := start + size
	if end > len(ids) {
		end = len(ids)
	}
	return ids[start:end]
}

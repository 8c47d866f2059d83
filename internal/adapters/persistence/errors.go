package persistence

import (
	"errors"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/jsamuelsen/quote-roulette/internal/domain"
)

// fold returns the Unicode case-folded form stored in the *_folded columns.
// SQLite's LIKE folds ASCII only, so filters compare folded values.
func fold(s string) string {
	return cases.Fold().String(s)
}

// likePattern builds a substring LIKE pattern over folded s, escaping wildcards.
func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(fold(s)) + "%"
}

func notFound(entity string, id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.NewNotFoundError(entity, strconv.FormatUint(uint64(id), 10))
	}

	return err
}

func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

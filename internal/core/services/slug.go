package services

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/viniapp/viniapp-node/internal/db"
	"github.com/viniapp/viniapp-node/pkg/rand"
)

const (
	// MaxSlugAttempts is the number of random suffixes tried before giving up on a name
	MaxSlugAttempts = 10

	slugInsertRetries = 1

	defaultSlug      = "viniapp"
	slugSuffixLength = 5
)

// Slugify turns a name into a lowercase ascii slug made of alphanumeric words joined by dashes
func Slugify(name string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(strings.ReplaceAll(folded, "@", "-at-"))

	var b strings.Builder
	dash := false
	for _, r := range folded {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
			continue
		}
		dash = true
	}
	if b.Len() == 0 {
		return defaultSlug
	}
	return b.String()
}

func randomSlugSuffix() (string, error) {
	return rand.String(slugSuffixLength)
}

// availableSlug returns a slug for name that is not stored yet
func (v *viniappService) availableSlug(ctx context.Context, conn db.Querier, name string) (string, error) {
	base := Slugify(name)
	slug := base
	for attempt := 0; ; attempt++ {
		taken, err := v.repo.ExistsBySlug(ctx, conn, slug)
		if err != nil {
			return "", fmt.Errorf("checking slug %s: %w", slug, err)
		}
		if !taken {
			return slug, nil
		}
		if attempt == MaxSlugAttempts {
			return "", fmt.Errorf("%w: %s", ErrSlugUnavailable, base)
		}
		suffix, err := v.slugSuffix()
		if err != nil {
			return "", fmt.Errorf("generating slug suffix: %w", err)
		}
		slug = base + "-" + suffix
	}
}

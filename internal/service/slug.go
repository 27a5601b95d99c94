package service

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

const slugSuffixLen = 8

type slugChecker func(ctx context.Context, slug string) (bool, error)

// uniqueSlug slugifies name and, if that slug is taken, appends a short
// random suffix. Names that slugify to nothing get the suffix alone.
func uniqueSlug(ctx context.Context, name string, exists slugChecker) (string, error) {
	base := slug.Make(name)
	if base != "" {
		taken, err := exists(ctx, base)
		if err != nil {
			return "", err
		}
		if !taken {
			return base, nil
		}
	}

	for {
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:slugSuffixLen]
		candidate := suffix
		if base != "" {
			candidate = base + "-" + suffix
		}
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}

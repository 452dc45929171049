package deck

import (
	"fmt"
	"os"
	"path/filepath"
)

const imageURLPrefix = "/static/images/cards"

// ExistsFunc reports whether an asset exists, given its path relative to the
// card image root.
type ExistsFunc func(relPath string) bool

// ImageResolver maps a card and orientation to an image URL path. When the
// orientation is reversed but no "-r" asset variant exists, it falls back to
// the upright asset path.
type ImageResolver struct {
	exists ExistsFunc
}

// NewImageResolver checks assets on disk under assetsRoot.
func NewImageResolver(assetsRoot string) *ImageResolver {
	return &ImageResolver{
		exists: func(relPath string) bool {
			_, err := os.Stat(filepath.Join(assetsRoot, relPath))
			return err == nil
		},
	}
}

// NewImageResolverWithExists is used by tests and non-filesystem deployments.
func NewImageResolverWithExists(exists ExistsFunc) *ImageResolver {
	return &ImageResolver{exists: exists}
}

func (r *ImageResolver) Resolve(card Card, orientation Orientation) string {
	dir := "MajorArcana"
	if card.Arcana == ArcanaMinor {
		dir = "MinorArcana_" + string(card.Suit)
	}

	if orientation == Reversed {
		reversedRel := fmt.Sprintf("%s/%d-r.jpg", dir, card.Index)
		if r.exists(reversedRel) {
			return fmt.Sprintf("%s/%s", imageURLPrefix, reversedRel)
		}
	}
	return fmt.Sprintf("%s/%s/%d.jpg", imageURLPrefix, dir, card.Index)
}

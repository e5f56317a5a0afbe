package dataset

import (
	"fmt"
	"sort"
	"strings"

	"github.com/oukeidos/lorakit/internal/apperrors"
)

// Pair is one image and its caption, joined on the shared basename.
type Pair struct {
	Key         string
	ImagePath   string
	CaptionPath string
}

// PairByBasename joins the images and captions in dir on their basename.
// Pairs are returned in sorted key order.
func PairByBasename(dir string) ([]Pair, error) {
	images, err := ListImages(dir)
	if err != nil {
		return nil, err
	}
	captions, err := ListCaptions(dir)
	if err != nil {
		return nil, err
	}
	return Join(images, captions)
}

// Join pairs image and caption paths on basename.
func Join(images, captions []string) ([]Pair, error) {
	if len(images) != len(captions) {
		return nil, apperrors.Newf(apperrors.KindCountMismatch, nil,
			"Number of images (%d) does not match number of text files (%d).", len(images), len(captions))
	}

	byKey := make(map[string]*Pair, len(images))
	var dupes []string
	for _, img := range images {
		key := Basename(img)
		if _, ok := byKey[key]; ok {
			dupes = append(dupes, key)
			continue
		}
		byKey[key] = &Pair{Key: key, ImagePath: img}
	}
	if len(dupes) > 0 {
		return nil, apperrors.Newf(apperrors.KindPairing, nil,
			"Several images share a name: %s", strings.Join(dupes, ", "))
	}

	var orphanCaptions []string
	for _, c := range captions {
		p, ok := byKey[Basename(c)]
		if !ok {
			orphanCaptions = append(orphanCaptions, Basename(c))
			continue
		}
		p.CaptionPath = c
	}

	var orphanImages []string
	pairs := make([]Pair, 0, len(byKey))
	for _, p := range byKey {
		if p.CaptionPath == "" {
			orphanImages = append(orphanImages, p.Key)
			continue
		}
		pairs = append(pairs, *p)
	}
	if len(orphanImages) > 0 || len(orphanCaptions) > 0 {
		sort.Strings(orphanImages)
		sort.Strings(orphanCaptions)
		return nil, apperrors.New(apperrors.KindPairing, describeOrphans(orphanImages, orphanCaptions), nil)
	}

	sort.Slice(pairs, func(i, j int) bool { return pairs[i].Key < pairs[j].Key })
	return pairs, nil
}

func describeOrphans(images, captions []string) string {
	var parts []string
	if len(images) > 0 {
		parts = append(parts, fmt.Sprintf("images without caption: %s", strings.Join(images, ", ")))
	}
	if len(captions) > 0 {
		parts = append(parts, fmt.Sprintf("captions without image: %s", strings.Join(captions, ", ")))
	}
	return "Images and captions do not match (" + strings.Join(parts, "; ") + ")."
}

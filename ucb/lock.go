package ucb

import (
	"github.com/pkg/errors"

	"ucb-locker/ds"
	"ucb-locker/ucb/uconfig"
	"ucb-locker/ucb/upage"
)

func ValidateImage(image []byte, mirrors bool) error {
	if len(image)%upage.Size != 0 {
		return ErrInvalidImageSize{Size: len(image)}
	}
	if required := RequiredSize(mirrors); len(image) < required {
		return ErrImageTooShort{Size: len(image), Required: required}
	}
	return nil
}

// Lock applies config to a copy of image and returns the copy together with
// one Change per patched page: page 0 first, then page 3 and its mirrors in
// patch order. image itself is left untouched. Nothing is returned when the
// image fails validation.
func Lock(image []byte, config uconfig.Config) ([]byte, []upage.Change, error) {
	if err := ValidateImage(image, config.PatchMirrors); err != nil {
		return nil, nil, errors.Wrap(err, "Lock error validating image")
	}

	patched := ds.ShallowCopy(image)
	offsets := BlockPageOffsets(config.PatchMirrors)
	changes := make([]upage.Change, 0, len(offsets)+1)

	changes = append(
		changes,
		upage.PatchLockPage(upage.At(patched, upage.Page0Offset), config.Password),
	)
	for _, offset := range offsets {
		changes = append(
			changes,
			upage.PatchBlockPage(upage.At(patched, offset), config.BlockEraseWrite, offset),
		)
	}

	return patched, changes, nil
}

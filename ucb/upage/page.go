package upage

import (
	"fmt"
)

// At returns the page starting at offset. The view is capped at Size bytes, so
// appending to it never writes into the next page. Callers validate the image
// length beforehand.
func At(image []byte, offset int) Page {
	if offset%Size != 0 || offset+Size > len(image) {
		err := fmt.Errorf(
			`At got invalid page offset 0x%X for image of length 0x%X`,
			offset, len(image),
		)
		panic(err)
	}
	return image[offset : offset+Size : offset+Size]
}

func (p Page) Bit(offset int) byte {
	return p[offset] & 0x01
}

func (p Page) Password() []byte {
	password := make([]byte, PasswordLength)
	copy(password, p[PasswordOffset:PasswordOffset+PasswordLength])
	return password
}

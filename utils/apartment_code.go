package utils

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
	"strings"
	"time"
)

// PropertyCodePattern constrains property codes on the wire.
var PropertyCodePattern = regexp.MustCompile(`^[A-Za-z0-9_-]{4,50}$`)

var nonAlphanumeric = regexp.MustCompile(`[^A-Z0-9]`)

// GenerateApartmentCode builds the human-readable apartment identifier:
//
//	{propertyCode}-APT{unitNumber:03d}[-{normalizedApartmentNumber}]-{HHMMSS}
//
// The apartment-number segment is uppercased and stripped of non-alphanumeric
// characters, and omitted entirely when nothing remains. The HHMMSS suffix
// narrows but does not eliminate collisions: two apartments generated for the
// same property, unit and number within the same second produce the same code.
// Uniqueness is enforced by the apartment_code unique index; the create path
// retries with a fresh code when the insert hits it.
func GenerateApartmentCode(propertyCode string, unitNumber int, apartmentNumber string, at time.Time) string {
	norm := nonAlphanumeric.ReplaceAllString(strings.ToUpper(apartmentNumber), "")

	var sb strings.Builder
	sb.WriteString(propertyCode)
	sb.WriteString(fmt.Sprintf("-APT%03d", unitNumber))
	if norm != "" {
		sb.WriteString("-")
		sb.WriteString(norm)
	}
	sb.WriteString("-")
	sb.WriteString(at.Format("150405"))
	return sb.String()
}

const codeSuffixCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// CodeSuffix returns n random characters (A-Z0-9) used to de-collide a
// regenerated apartment code. crypto/rand + big.Int avoids modulo bias.
func CodeSuffix(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("invalid length")
	}
	var sb strings.Builder
	alphaLen := big.NewInt(int64(len(codeSuffixCharset)))
	for i := 0; i < n; i++ {
		num, err := rand.Int(rand.Reader, alphaLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(codeSuffixCharset[num.Int64()])
	}
	return sb.String(), nil
}

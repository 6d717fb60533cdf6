package corpus

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Form names a Unicode normalization form
type Form string

const (
	FormNFC  Form = "NFC"
	FormNFD  Form = "NFD"
	FormNFKC Form = "NFKC"
	FormNFKD Form = "NFKD"
	// FormNone leaves text as read
	FormNone Form = "none"
)

// Forms lists the accepted normalization forms
var Forms = []Form{FormNFC, FormNFD, FormNFKC, FormNFKD, FormNone}

// ParseForm converts a case-insensitive form name; empty selects NFC
func ParseForm(s string) (Form, error) {
	if s == "" {
		return FormNFC, nil
	}
	for _, f := range Forms {
		if strings.EqualFold(s, string(f)) {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown normalization form %q", s)
}

// Normalize returns text in the given form
func Normalize(text string, form Form) string {
	switch form {
	case FormNFC, "":
		return norm.NFC.String(text)
	case FormNFD:
		return norm.NFD.String(text)
	case FormNFKC:
		return norm.NFKC.String(text)
	case FormNFKD:
		return norm.NFKD.String(text)
	default:
		return text
	}
}

package statute

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"
)

// Fingerprint is a stable content hash of a statute, covering every
// field that can influence verification.
func Fingerprint(s Statute) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s|%d|%s|%s|%d|", s.ID, s.Version, s.Title, s.Jurisdiction, s.Hierarchy)
	for _, c := range s.Preconditions {
		b.WriteString(c.String())
		b.WriteByte(';')
	}
	fmt.Fprintf(&b, "|%s|%s|", s.Effect.Type, s.Effect.Description)
	for _, p := range s.Effect.Parameters {
		fmt.Fprintf(&b, "%s=%s;", p.Key, p.Value)
	}
	b.WriteString(s.DiscretionLogic)
	b.WriteByte('|')
	b.WriteString(strings.Join(s.References, ","))
	if s.Validity != nil {
		fmt.Fprintf(&b, "|%d,%d,%d,%d",
			s.Validity.EffectiveDate.Unix(), s.Validity.ExpiryDate.Unix(),
			s.Validity.EnactedAt.Unix(), s.Validity.AmendedAt.Unix())
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// SetFingerprint hashes a whole collection, independent of input order.
func SetFingerprint(statutes []Statute) string {
	keys := make([]string, 0, len(statutes))
	for _, s := range statutes {
		keys = append(keys, Fingerprint(s))
	}
	sort.Strings(keys)
	sum := sha256.Sum256([]byte(strings.Join(keys, "\n")))
	return hex.EncodeToString(sum[:])
}

// ConditionFingerprint hashes a condition's canonical form.
func ConditionFingerprint(c Condition) string {
	sum := sha256.Sum256([]byte(c.String()))
	return hex.EncodeToString(sum[:])
}

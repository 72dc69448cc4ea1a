package obfuscate

import (
	"go.uber.org/zap"

	"github.com/djolertrk/kovid-obfuscation-passes/cipher"
	"github.com/djolertrk/kovid-obfuscation-passes/ir"
)

// DefaultKey is used by the renaming and string encryption passes when no
// key is configured.
const DefaultKey = "default_key"

// EncryptStrings hides plaintext string literals: every string global's
// initializer is XOR-encrypted with the key and the global is marked
// non-constant so a runtime decryption routine may rewrite it. This pass
// performs only the compile-time encryption; providing the runtime
// decryptor is the host's responsibility.
type EncryptStrings struct {
	Key string
}

// NewEncryptStrings creates the pass, falling back to DefaultKey for an
// empty key.
func NewEncryptStrings(key string) *EncryptStrings {
	if key == "" {
		key = DefaultKey
	}
	return &EncryptStrings{Key: key}
}

// Name implements kovid.ModulePass.
func (p *EncryptStrings) Name() string { return "encrypt-strings" }

// RunModule encrypts every string global with a non-empty initializer.
// A trailing NUL byte is preserved unencrypted so the initializer keeps
// its terminator.
func (p *EncryptStrings) RunModule(m *ir.Module) bool {
	changed := false
	for _, g := range m.Globals {
		if !g.IsString || len(g.Init) == 0 {
			continue
		}

		body := g.Init
		hasNul := body[len(body)-1] == 0
		if hasNul {
			body = body[:len(body)-1]
		}

		enc, err := cipher.XOR(body, p.Key)
		if err != nil {
			Logger().Warn("skipping string global", zap.String("global", g.Name), zap.Error(err))
			continue
		}
		if hasNul {
			enc = append(enc, 0)
		}

		Logger().Debug("encrypted string global",
			zap.String("global", g.Name),
			zap.Int("bytes", len(enc)))

		g.Init = enc
		g.Constant = false
		changed = true
	}
	return changed
}

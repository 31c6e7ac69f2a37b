package resolve

import (
	"strings"
)

// Substitution rewrites one historical install layout to its replacement.
// Matching ignores case and treats '\' and '/' alike.
type Substitution struct {
	From string
	To   string
}

// DefaultSubstitutions holds the rule for the relocated F# 3.0 reference
// assemblies.
var DefaultSubstitutions = []Substitution{
	{
		From: "Reference Assemblies/Microsoft/FSharp/3.0/Runtime/v4.0",
		To:   "Reference Assemblies/Microsoft/FSharp/.NETFramework/v4.0/4.3.0.0",
	},
}

// Apply rewrites the first occurrence of s.From in path. The result uses
// forward slashes.
func (s Substitution) Apply(path string) (string, bool) {
	norm := strings.ReplaceAll(path, `\`, "/")
	from := strings.ReplaceAll(s.From, `\`, "/")
	if from == "" || len(norm) < len(from) {
		return norm, false
	}
	for i := 0; i+len(from) <= len(norm); i++ {
		if strings.EqualFold(norm[i:i+len(from)], from) {
			return norm[:i] + strings.ReplaceAll(s.To, `\`, "/") + norm[i+len(from):], true
		}
	}
	return norm, false
}

func substitute(rules []Substitution, path string) string {
	out := strings.ReplaceAll(path, `\`, "/")
	for _, rule := range rules {
		if rewritten, ok := rule.Apply(out); ok {
			out = rewritten
		}
	}
	return out
}

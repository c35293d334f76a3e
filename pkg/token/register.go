package token

import (
	"strings"
	"sync"
)

// nextTokenID tracks the next available dynamic token ID.
// Dynamic tokens start after maxBuiltin (999).
var nextTokenID = int32(maxBuiltin)

var (
	registryMu sync.RWMutex

	// dynamicTokens maps registered dynamic tokens to their names.
	dynamicTokens = make(map[TokenType]string)

	// dynamicKeywords maps lowercase keyword names to their token types.
	dynamicKeywords = make(map[string]TokenType)
)

// Register registers a dynamic keyword token with the given name and
// returns its type. Registering the same name again (in any letter case)
// returns the type assigned the first time.
//
// Used by the parser to add BigQuery keywords such as QUALIFY and PIVOT
// that are not reserved in every position.
func Register(name string) TokenType {
	key := strings.ToLower(name)

	registryMu.Lock()
	defer registryMu.Unlock()

	if t, ok := dynamicKeywords[key]; ok {
		return t
	}

	nextTokenID++
	t := TokenType(nextTokenID)
	dynamicTokens[t] = strings.ToUpper(name)
	dynamicKeywords[key] = t
	return t
}

// getDynamicName returns the name of a dynamic token.
func getDynamicName(t TokenType) (string, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	name, ok := dynamicTokens[t]
	return name, ok
}

// LookupDynamicKeyword returns the token type for a dynamic keyword.
// Returns IDENT and false if the keyword is not registered.
func LookupDynamicKeyword(name string) (TokenType, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	if tok, ok := dynamicKeywords[strings.ToLower(name)]; ok {
		return tok, true
	}
	return IDENT, false
}

// IsDynamic returns true if the token type is a dynamically registered token.
func IsDynamic(t TokenType) bool {
	return t > maxBuiltin
}

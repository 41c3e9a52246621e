package cli

import (
	"os"

	"github.com/jarredhawkins/blocklocate"
	"github.com/jarredhawkins/blocklocate/internal/balanceparser"
	"github.com/jarredhawkins/blocklocate/internal/codeline"
	"github.com/jarredhawkins/blocklocate/internal/profileconfig"
	"github.com/jarredhawkins/blocklocate/internal/rubylex"
)

// resolveOptions builds a blocklocate.Options wired to a lexer extended by
// whatever .blocklocate.yaml profile applies: configPath if set, otherwise
// the nearest one discovered upward from the current directory. No profile
// found is not an error -- it just means the stock Ruby lexer applies.
func resolveOptions(configPath string) (blocklocate.Options, error) {
	var profile *profileconfig.Profile

	path := configPath
	if path == "" {
		wd, err := os.Getwd()
		if err != nil {
			return blocklocate.Options{}, err
		}
		found, err := profileconfig.Discover(wd)
		if err != nil {
			return blocklocate.Options{}, err
		}
		path = found
	}

	if path != "" {
		p, err := profileconfig.Load(path)
		if err != nil {
			return blocklocate.Options{}, err
		}
		profile = p
	}

	newLexer := func() *rubylex.Lexer {
		lx := rubylex.New()
		profileconfig.Apply(lx, profile)
		return lx
	}

	return blocklocate.Options{
		Lexer:  newLexer(),
		Parser: balanceparser.New(func() codeline.Lexer { return newLexer() }),
	}, nil
}

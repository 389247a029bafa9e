package cmd

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	hcommon "github.com/tranvictor/humanizer/common"
	"github.com/tranvictor/humanizer/humanizer"
	"github.com/tranvictor/humanizer/humanizer/modules"
	"github.com/tranvictor/humanizer/ui"
	"github.com/tranvictor/humanizer/util/explorers"
	"github.com/tranvictor/humanizer/util/sigsearch"
)

var selectorRe = regexp.MustCompile(`^0x[0-9a-fA-F]{8}$`)

// describeSelector prints either the selector of a text signature or the
// signature of a 0x selector. Known selectors are answered from meta without
// asking sigs.
func describeSelector(ctx context.Context, u ui.UI, meta *humanizer.Metadata, sigs humanizer.SignatureLookup, input string) error {
	input = strings.TrimSpace(input)
	if !selectorRe.MatchString(input) {
		m, err := hcommon.MethodFromSignature(input)
		if err != nil {
			return fmt.Errorf("%q is neither a selector nor a valid signature: %w", input, err)
		}
		u.KeyValue([][2]string{
			{"Signature:", m.Sig},
			{"Selector:", hcommon.SignatureSelector(m.Sig)},
		})
		return nil
	}

	selector := strings.ToLower(input)
	source := "built-in"
	sig, found := meta.Signature(selector)
	if !found {
		var err error
		sig, err = sigs.LookupSelector(ctx, selector)
		if err != nil {
			return fmt.Errorf("couldn't look up %s: %w", selector, err)
		}
		source = "signature directory"
	}
	u.KeyValue([][2]string{
		{"Selector:", selector},
		{"Signature:", sig},
		{"Source:", source},
	})
	return nil
}

// SearchLimit bounds the rows printed by selector search.
var SearchLimit int

// searchSignatures prints the signatures known to meta and the call modules
// whose names match query.
func searchSignatures(u ui.UI, meta *humanizer.Metadata, query string, limit int) error {
	sigs := modules.KnownSignatures()
	for _, sig := range meta.Signatures() {
		sigs = append(sigs, sig)
	}
	index, err := sigsearch.New(sigs)
	if err != nil {
		return err
	}
	defer index.Close()

	hits, err := index.Search(query, limit)
	if err != nil {
		return err
	}
	if len(hits) == 0 {
		u.Warn("No known signature matches %q.", query)
		return nil
	}
	rows := [][]string{}
	for _, h := range hits {
		rows = append(rows, []string{h.Selector, h.Signature})
	}
	u.TableWithGroups([]string{"Selector", "Signature"}, [][][]string{rows})
	return nil
}

var selectorSearchCmd = &cobra.Command{
	Use:   "search <words>",
	Short: "Find known signatures by the words of their name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		analyzer, tokens, err := newAnalyzer(appConfig)
		if err != nil {
			return err
		}
		defer tokens.Close()
		return searchSignatures(out, analyzer.LoadMetadata(), strings.Join(args, " "), SearchLimit)
	},
}

var selectorCmd = &cobra.Command{
	Use:   "selector <signature|0xselector>",
	Short: "Convert between function signatures and selectors",
	Long: `Given a text signature such as "transfer(address,uint256)" print its
4 byte selector. Given a selector such as 0xa9059cbb print the signature it
belongs to, looking it up online when it is not built in.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		meta, err := humanizer.BaselineMetadata()
		if err != nil {
			return err
		}
		sigs := explorers.NewSignatureDirectory(appConfig.SignatureAPI, &http.Client{Timeout: appConfig.LookupTimeout})
		return describeSelector(cmd.Context(), out, meta, sigs, args[0])
	},
}

func init() {
	selectorSearchCmd.Flags().IntVarP(&SearchLimit, "limit", "l", 10, "Maximum number of signatures to print.")
	selectorCmd.AddCommand(selectorSearchCmd)
	rootCmd.AddCommand(selectorCmd)
}

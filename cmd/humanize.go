package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"os"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/common/math"
	"github.com/spf13/cobra"

	hcommon "github.com/tranvictor/humanizer/common"
	"github.com/tranvictor/humanizer/config"
	"github.com/tranvictor/humanizer/humanizer"
	"github.com/tranvictor/humanizer/humanizer/parsers"
	"github.com/tranvictor/humanizer/networks"
	"github.com/tranvictor/humanizer/txanalyzer"
	"github.com/tranvictor/humanizer/ui"
	"github.com/tranvictor/humanizer/util/addrbook"
	"github.com/tranvictor/humanizer/util/cache"
	"github.com/tranvictor/humanizer/util/explorers"
	"github.com/tranvictor/humanizer/util/reader"
)

// opFile is the json form of an account operation:
//
//	{
//		"id": "optional",
//		"account": "0x...",
//		"chainId": 1,
//		"calls": [{"to": "0x...", "value": "1000000000000000000", "data": "0x..."}]
//	}
//
// Values take decimal or 0x-prefixed hex wei.
type opFile struct {
	ID      string           `json:"id"`
	Account common.Address   `json:"account"`
	ChainID uint64           `json:"chainId"`
	Calls   []opFileCallJSON `json:"calls"`
}

type opFileCallJSON struct {
	To    common.Address        `json:"to"`
	Value *math.HexOrDecimal256 `json:"value"`
	Data  hexutil.Bytes         `json:"data"`
}

func readOpFile(r io.Reader) (humanizer.AccountOp, error) {
	f := opFile{}
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return humanizer.AccountOp{}, fmt.Errorf("couldn't parse operation json: %w", err)
	}
	if len(f.Calls) == 0 {
		return humanizer.AccountOp{}, fmt.Errorf("operation has no calls")
	}
	if f.ChainID == 0 {
		f.ChainID = 1
	}
	op := humanizer.AccountOp{ID: f.ID, Account: f.Account, ChainID: f.ChainID}
	for _, c := range f.Calls {
		call := humanizer.Call{To: c.To, Data: c.Data}
		if c.Value != nil {
			call.Value = (*big.Int)(c.Value)
		}
		op.Calls = append(op.Calls, call)
	}
	return op, nil
}

// opFromFlags builds a single call operation. --to and --account take an
// address or a name of the address book. --value is in native units of the chain, e.g.
// 0.5 for half an ETH.
func opFromFlags(book addrbook.Map) (humanizer.AccountOp, error) {
	to, err := book.Lookup(config.To)
	if err != nil {
		return humanizer.AccountOp{}, fmt.Errorf("invalid --to: %w", err)
	}
	op := humanizer.AccountOp{ChainID: config.ChainID}
	if config.Account != "" {
		account, err := book.Lookup(config.Account)
		if err != nil {
			return humanizer.AccountOp{}, fmt.Errorf("invalid --account: %w", err)
		}
		op.Account = account.Address
	}
	call := humanizer.Call{To: to.Address}
	if config.Value != "" {
		value, err := hcommon.FloatStringToBig(config.Value, parsers.NativeToken(config.ChainID).Decimals)
		if err != nil {
			return humanizer.AccountOp{}, fmt.Errorf("invalid --value: %w", err)
		}
		call.Value = value
	}
	if data := strings.TrimSpace(config.Data); data != "" && data != "0x" {
		if !strings.HasPrefix(data, "0x") {
			data = "0x" + data
		}
		decoded, err := hexutil.Decode(data)
		if err != nil {
			return humanizer.AccountOp{}, fmt.Errorf("invalid --data: %w", err)
		}
		call.Data = decoded
	}
	op.Calls = []humanizer.Call{call}
	return op, nil
}

func loadOp(book addrbook.Map) (humanizer.AccountOp, error) {
	if config.OpFile == "" {
		return opFromFlags(book)
	}
	var r io.Reader = os.Stdin
	if config.OpFile != "-" {
		f, err := os.Open(config.OpFile)
		if err != nil {
			return humanizer.AccountOp{}, err
		}
		defer f.Close()
		r = f
	}
	return readOpFile(r)
}

func newAnalyzer(cfg *config.Config) (*txanalyzer.Analyzer, *reader.TokenReader, error) {
	rpcs, err := cfg.RPCs()
	if err != nil {
		return nil, nil, err
	}
	tokens := reader.NewTokenReader(rpcs)
	sigs := explorers.NewSignatureDirectory(cfg.SignatureAPI, &http.Client{Timeout: cfg.LookupTimeout})
	resolver := txanalyzer.NewResolver(sigs, tokens,
		txanalyzer.WithLookupTimeout(cfg.LookupTimeout),
		txanalyzer.WithResolverLogger(lggr.Named("resolver")),
	)
	maxIterations := cfg.MaxIterations
	if config.MaxIterations > 0 {
		maxIterations = config.MaxIterations
	}
	analyzer := txanalyzer.NewAnalyzer(resolver, cache.NewFileStorage(cfg.CachePath),
		txanalyzer.WithMaxIterations(maxIterations),
		txanalyzer.WithLogger(lggr),
	)
	return analyzer, tokens, nil
}

// loadAddressBook reads the configured address book. A book that can't be
// read is ignored.
func loadAddressBook(path string) addrbook.Map {
	if path == "" {
		return nil
	}
	book, err := addrbook.LoadFile(path)
	if err != nil {
		lggr.Warnw("ignoring address book", "path", path, "err", err)
		return nil
	}
	return book
}

// withAddressBook merges the names of book into meta.
func withAddressBook(meta *humanizer.Metadata, book addrbook.Map) *humanizer.Metadata {
	if len(book) == 0 {
		return meta
	}
	return meta.WithNames(book.Names())
}

type jsonCall struct {
	Text              string                    `json:"text"`
	FullVisualization []humanizer.Visualization `json:"fullVisualization"`
	Warnings          []humanizer.Warning       `json:"warnings"`
}

type jsonResult struct {
	OpID       string     `json:"opId"`
	ChainID    uint64     `json:"chainId"`
	Calls      []jsonCall `json:"calls"`
	Iterations int        `json:"iterations"`
	Pending    int        `json:"pending"`
}

func networkName(chainID uint64) string {
	if n, err := networks.GetNetworkByID(chainID); err == nil {
		return n.GetName()
	}
	return fmt.Sprintf("chain %d", chainID)
}

// humanize runs op through analyzer and prints the result to u.
func humanize(ctx context.Context, u ui.UI, analyzer *txanalyzer.Analyzer, meta *humanizer.Metadata, op humanizer.AccountOp, jsonOutput bool) error {
	stop := func() {}
	if !jsonOutput {
		stop = u.Spinner("Humanizing...")
	}
	res, err := analyzer.Humanize(ctx, op, meta, func(update txanalyzer.Update) {
		if update.Final || jsonOutput {
			return
		}
		stop()
		stop = u.Spinner(fmt.Sprintf("Looking up unknown data (round %d)...", update.Iteration))
	})
	stop()
	if err != nil {
		return err
	}

	if jsonOutput {
		result := jsonResult{
			OpID:       res.OpID,
			ChainID:    op.ChainID,
			Iterations: res.Iterations,
			Pending:    res.Pending,
		}
		for i, c := range res.Calls {
			vis := c.FullVisualization
			if vis == nil {
				vis = []humanizer.Visualization{}
			}
			warnings := c.Warnings
			if warnings == nil {
				warnings = []humanizer.Warning{}
			}
			result.Calls = append(result.Calls, jsonCall{Text: res.Texts[i], FullVisualization: vis, Warnings: warnings})
		}
		content, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(u.Writer(), "%s\n", content)
		return err
	}

	u.Section(fmt.Sprintf("Operation on %s", networkName(op.ChainID)))
	u.KeyValue([][2]string{
		{"Account:", op.Account.Hex()},
		{"Calls:", fmt.Sprintf("%d", len(op.Calls))},
		{"Lookup rounds:", fmt.Sprintf("%d", res.Iterations)},
	})
	ui.PrintCalls(u, res.Calls)
	if res.Pending > 0 {
		u.Warn("%d lookups did not finish, some calls may be incomplete.", res.Pending)
	}
	return nil
}

var humanizeCmd = &cobra.Command{
	Use:   "humanize",
	Short: "Describe the calls of an account operation",
	Long: `Describe the calls of an account operation.

A single call can be given with flags:

	humanizer humanize --to 0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2 --value 0.5

A batch is read from a json file (or - for stdin):

	{
		"account": "0x...",
		"chainId": 1,
		"calls": [{"to": "0x...", "value": "0x0", "data": "0x..."}]
	}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		book := loadAddressBook(appConfig.AddressBook)
		op, err := loadOp(book)
		if err != nil {
			return err
		}
		analyzer, tokens, err := newAnalyzer(appConfig)
		if err != nil {
			return err
		}
		defer tokens.Close()

		meta := withAddressBook(analyzer.LoadMetadata(), book)
		return humanize(cmd.Context(), out, analyzer, meta, op, config.JSONOutput)
	},
}

func init() {
	humanizeCmd.Flags().Uint64VarP(&config.ChainID, "chain-id", "c", 1, "Chain id of the operation.")
	humanizeCmd.Flags().StringVarP(&config.Account, "account", "a", "", "Smart account that executes the operation. Address or address book name.")
	humanizeCmd.Flags().StringVarP(&config.To, "to", "t", "", "Target of a single call. Address or address book name.")
	humanizeCmd.Flags().StringVarP(&config.Value, "value", "v", "", "Native amount sent with a single call, in native units (e.g. 0.5).")
	humanizeCmd.Flags().StringVarP(&config.Data, "data", "d", "", "Hex call data of a single call.")
	humanizeCmd.Flags().StringVarP(&config.OpFile, "file", "f", "", "Read the operation from a json file, - for stdin.")
	humanizeCmd.Flags().BoolVar(&config.JSONOutput, "json", false, "Print the result as json.")
	humanizeCmd.Flags().IntVar(&config.MaxIterations, "max-iterations", 0, "Bound on lookup rounds. 0 uses the configured value.")
	rootCmd.AddCommand(humanizeCmd)
}

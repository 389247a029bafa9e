package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tranvictor/humanizer/networks"
	"github.com/tranvictor/humanizer/ui"
)

var (
	NetworkConfig string
	NetworkForce  bool
)

// readNetworkConfig accepts either a json document or a path to one.
func readNetworkConfig(input string) (networks.Network, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, fmt.Errorf("--from is required")
	}
	if strings.HasPrefix(input, "{") && strings.HasSuffix(input, "}") {
		n, err := networks.NewNetworkFromJSON([]byte(input))
		if err != nil {
			return nil, fmt.Errorf("the provided json is not valid: %w", err)
		}
		return n, nil
	}
	content, err := os.ReadFile(input)
	if err != nil {
		return nil, fmt.Errorf("couldn't read the provided json file: %w", err)
	}
	n, err := networks.NewNetworkFromJSON(content)
	if err != nil {
		return nil, fmt.Errorf("the provided json is not a valid network config: %w", err)
	}
	return n, nil
}

// addNetwork registers n and saves it to dir so later runs pick it up. An
// existing network sharing a name or the chain id is only replaced with force.
func addNetwork(u ui.UI, dir string, n networks.Network, force bool) error {
	names := append([]string{n.GetName()}, n.GetAlternativeNames()...)
	for _, name := range names {
		if _, err := networks.GetNetwork(name); err == nil {
			if !force {
				return fmt.Errorf("network with name %s already exists, use --force to replace it", name)
			}
			u.Warn("Network with name %s already exists. It will be replaced.", name)
		}
	}
	if existing, err := networks.GetNetworkByID(n.GetChainID()); err == nil {
		if !force {
			return fmt.Errorf("chain id %d is already used by %s, use --force to replace it", n.GetChainID(), existing.GetName())
		}
		u.Warn("Chain id %d is used by %s. It will be replaced.", n.GetChainID(), existing.GetName())
	}

	if err := networks.AddNetwork(n); err != nil {
		return fmt.Errorf("failed to add the new network: %w", err)
	}

	content, err := json.MarshalIndent(n, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("couldn't create %s: %w", dir, err)
	}
	path := filepath.Join(dir, n.GetName()+".json")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("couldn't save network to %s: %w", path, err)
	}
	u.Success("Network %s with chain ID %d added and saved to %s.", n.GetName(), n.GetChainID(), path)
	return nil
}

func listNetworks(u ui.UI) {
	groups := [][][]string{}
	for _, n := range networks.GetSupportedNetworks() {
		nodes := n.GetDefaultNodes()
		keys := make([]string, 0, len(nodes))
		for k := range nodes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		rpcs := make([]string, 0, len(keys))
		for _, k := range keys {
			rpcs = append(rpcs, fmt.Sprintf("%s: %s", k, nodes[k]))
		}
		if url, found := appConfigRPC(n.GetChainID()); found {
			rpcs = append([]string{fmt.Sprintf("configured: %s", url)}, rpcs...)
		}
		groups = append(groups, [][]string{{
			fmt.Sprintf("%d", n.GetChainID()),
			n.GetName(),
			n.GetNativeTokenSymbol(),
			strings.Join(rpcs, ", "),
		}})
	}
	u.TableWithGroups([]string{"Chain ID", "Name", "Native", "RPC nodes"}, groups)
}

func appConfigRPC(chainID uint64) (string, bool) {
	if appConfig == nil {
		return "", false
	}
	url, found := appConfig.RPC[fmt.Sprintf("%d", chainID)]
	return url, found
}

var addNetworkCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new network to the supported networks list locally",
	Long: `--from takes a network config json file path OR a json string in the following format:
	{
		"name": "gnosis",
		"alternative_names": ["xdai"],
		"chain_id": 100,
		"native_token_symbol": "xDAI",
		"native_token_decimal": 18,
		"node_variable_name": "GNOSIS_MAINNET_NODE",
		"default_nodes": {
			"gnosis": "https://rpc.gnosischain.com"
		}
	}`,
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := readNetworkConfig(NetworkConfig)
		if err != nil {
			return err
		}
		return addNetwork(out, appConfig.NetworksDir, n, NetworkForce)
	},
}

var listNetworkCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all of supported networks",
	Run: func(cmd *cobra.Command, args []string) {
		listNetworks(out)
		out.Info("To add more networks use: humanizer network add --from <json>")
		out.Info("To delete a custom network, delete its json file in %s.", appConfig.NetworksDir)
	},
}

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Manage the networks humanizer knows about",
}

func init() {
	addNetworkCmd.Flags().StringVar(&NetworkConfig, "from", "", "Path to the network config json file, or the json itself")
	addNetworkCmd.Flags().BoolVarP(&NetworkForce, "force", "f", false, "Replace an existing network with the same name or chain id")

	networkCmd.AddCommand(listNetworkCmd)
	networkCmd.AddCommand(addNetworkCmd)
	rootCmd.AddCommand(networkCmd)
}

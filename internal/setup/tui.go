package setup

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/zilviaxbt/galaboard/config"
	"github.com/zilviaxbt/galaboard/internal/domain"
)

var (
	subtle    = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#383838"}
	highlight = lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"}
	special   = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(highlight).
			Padding(1, 2).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(special).
			Bold(true).
			MarginTop(1).
			MarginBottom(0)
)

// RunTUI launches the terminal configuration wizard and writes the result
// to config.yaml.
func RunTUI() error {
	var (
		listenAddr  string
		priceSource string
		assetID     string
		pair        string
		ttlStr      string
		ownersFile  string
		gatewayURL  string
		confirm     bool
	)

	// defaults
	defaults := config.Default()
	listenAddr = defaults.ListenAddr
	assetID = defaults.AssetID
	pair = defaults.Pair.String()
	ttlStr = defaults.PriceTTL.String()
	ownersFile = defaults.OwnersFile
	gatewayURL = defaults.GatewayURL

	// step 1: welcome
	fmt.Print("\033[H\033[2J") // Clear screen
	fmt.Println(headerStyle.Render("GALABOARD CONFIG WIZARD"))
	fmt.Println(lipgloss.NewStyle().Foreground(subtle).Render("Let's get your leaderboard serving in style.\n"))

	// price source
	fmt.Println(stepStyle.Render("STEP 1: PRICE SOURCE"))
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should GALA/USD be quoted from?").
				Options(
					huh.NewOption("CoinGecko", config.SourceCoinGecko),
					huh.NewOption("Binance", config.SourceBinance),
					huh.NewOption("Bybit", config.SourceBybit),
				).
				Value(&priceSource),
		),
	).Run()
	if err != nil {
		return err
	}

	// asset identity
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("GALABOARD CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 2: ASSET"))
	assetFields := []huh.Field{
		huh.NewInput().
			Title("Trading Pair").
			Description("Must contain underscore (e.g. GALA_USDT)").
			Value(&pair).
			Validate(func(s string) error {
				_, err := domain.ParsePair(s)
				return err
			}),
	}
	if priceSource == config.SourceCoinGecko {
		assetFields = append(assetFields, huh.NewInput().
			Title("CoinGecko Asset ID").
			Description("The coin id in CoinGecko's catalogue (e.g. gala)").
			Value(&assetID).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("asset id cannot be empty")
				}
				return nil
			}),
		)
	}
	err = huh.NewForm(huh.NewGroup(assetFields...)).Run()
	if err != nil {
		return err
	}

	// server
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("GALABOARD CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 3: SERVER"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Listen Address").
				Description("host:port to serve the leaderboard on").
				Value(&listenAddr).
				Validate(func(s string) error {
					_, _, err := net.SplitHostPort(s)
					return err
				}),
			huh.NewInput().
				Title("Price Cache TTL").
				Description("Duration string (e.g. 30s, 1m)").
				Value(&ttlStr).
				Validate(func(s string) error {
					_, err := time.ParseDuration(s)
					return err
				}),
		),
	).Run()
	if err != nil {
		return err
	}

	// fetcher
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("GALABOARD CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("STEP 4: FETCHER"))
	err = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Owners File").
				Description("One wallet address per line").
				Value(&ownersFile),
			huh.NewInput().
				Title("GalaChain Gateway URL").
				Value(&gatewayURL),
		),
	).Run()
	if err != nil {
		return err
	}

	// confirmation
	fmt.Print("\033[H\033[2J")
	fmt.Println(headerStyle.Render("GALABOARD CONFIG WIZARD"))
	fmt.Println(stepStyle.Render("FINAL CONFIRMATION"))

	// show summary
	summary := fmt.Sprintf(
		"Price source: %s\nPair: %s\nListen: %s\nCache TTL: %s\nOwners: %s\n",
		priceSource, pair, listenAddr, ttlStr, ownersFile,
	)
	fmt.Println(lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(1).Render(summary))

	err = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Save Configuration?").
				Affirmative("Yes, save").
				Negative("No, exit").
				Value(&confirm),
		),
	).Run()
	if err != nil {
		return err
	}

	if !confirm {
		return fmt.Errorf("setup cancelled by user")
	}

	fileCfg := config.FileConfig{
		ListenAddr:  listenAddr,
		PriceSource: priceSource,
		Pair:        pair,
		PriceTTL:    ttlStr,
		OwnersFile:  ownersFile,
		GatewayURL:  gatewayURL,
	}
	if priceSource == config.SourceCoinGecko {
		fileCfg.AssetID = assetID
	}

	data, err := yaml.Marshal(fileCfg)
	if err != nil {
		return fmt.Errorf("failed to generate yaml: %w", err)
	}

	filename := "config.yaml"
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to save config file: %w", err)
	}

	fmt.Println(lipgloss.NewStyle().Foreground(special).Render(fmt.Sprintf("\n✓ Configuration saved to %s", filename)))
	time.Sleep(1500 * time.Millisecond) // small pause to read success message
	return nil
}

package config

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"

	vcommon "github.com/viniapp/viniapp-node/internal/common"
	"github.com/viniapp/viniapp-node/internal/log"
)

const (
	// CacheProviderRedis uses redis for cache, pubsub and pipeline leases
	CacheProviderRedis = "redis"
	// CacheProviderValKey uses valkey for cache, pubsub and pipeline leases
	CacheProviderValKey = "valkey"
	// CacheProviderMemory keeps everything in process. Only suitable for a single binary setup.
	CacheProviderMemory = "memory"

	// SlugPlaceholder is replaced by the viniapp slug in the scaffold command
	SlugPlaceholder = "{slug}"

	defaultEnvFile      = ".env"
	encryptionKeyLength = 32
)

// ErrMissingConfig is returned when a mandatory configuration value is empty
var ErrMissingConfig = errors.New("missing configuration value")

// Configuration holds the project configuration
type Configuration struct {
	ServerUrl  string `env:"VINI_SERVER_URL"`
	ServerPort int    `env:"VINI_SERVER_PORT" envDefault:"3001"`
	Database   Database
	Cache      Cache
	Log        Log
	Chain      Chain
	Wallet     Wallet
	Pipeline   Pipeline
}

// Database has the database configuration
// URL: The database connection string
type Database struct {
	URL string `env:"VINI_DATABASE_URL"`
}

// Cache configurations. The same backend serves the verification cache, the pipeline
// event bus and the per viniapp execution lease.
type Cache struct {
	Provider string `env:"VINI_CACHE_PROVIDER" envDefault:"redis"`
	Url      string `env:"VINI_CACHE_URL" envDefault:"redis://localhost:6379/0"`
}

// Log holds runtime configurations
//
// Level: The minimum log level to show on logs. Values can be
//
//	 -4: Debug
//		0: Info
//		4: Warning
//		8: Error
//
// Mode: Log mode is the format of the log. It can be text or json
// 1: JSON
// 2: Text
type Log struct {
	Level int `env:"VINI_LOG_LEVEL" envDefault:"-4"`
	Mode  int `env:"VINI_LOG_MODE" envDefault:"2"`
}

// Chain holds the blockchain verification settings.
//
// RPC can be either a full RPC url or a chain id present in the public endpoints table.
// When it is a chain id not present in the table, CustomRPCURL is used.
type Chain struct {
	RPC                  string        `env:"VINI_RPC_URL"`
	CustomRPCURL         string        `env:"VINI_CHAIN_RPC_URL"`
	ContractAddress      string        `env:"VINI_CONTRACT"`
	Method               string        `env:"VINI_METHOD"`
	RPCResponseTimeout   time.Duration `env:"VINI_RPC_TIMEOUT" envDefault:"10s"`
	VerificationCacheTTL time.Duration `env:"VINI_VERIFICATION_CACHE_TTL" envDefault:"10m"`

	// RPCURL is the resolved endpoint. Filled by Sanitize.
	RPCURL string `env:"-"`
}

// Wallet holds the wallet provisioning credentials (Privy).
type Wallet struct {
	AppID         string `env:"VINI_PRIVY_APP_ID"`
	AppSecret     string `env:"VINI_PRIVY_APP_SECRET"`
	AuthID        string `env:"VINI_PRIVY_AUTH_ID"`
	AuthSecret    string `env:"VINI_PRIVY_AUTH_SECRET"`
	BaseURL       string `env:"VINI_PRIVY_BASE_URL" envDefault:"https://api.privy.io/v1"`
	RetryMax      int    `env:"VINI_PRIVY_RETRY_MAX" envDefault:"0"`
	EncryptionKey string `env:"VINI_WALLET_ENCRYPTION_KEY"`
}

// Pipeline holds the provisioning pipeline settings.
type Pipeline struct {
	FactoryAPIKey      string        `env:"FACTORY_API_KEY"`
	PromptTemplatePath string        `env:"VINI_PROMPT_TEMPLATE_PATH" envDefault:"storage/prompt.md"`
	ReferenceDataPath  string        `env:"VINI_REFERENCE_DATA_PATH" envDefault:"storage/all_x402scan_endpoints.json"`
	DeployPath         string        `env:"VINI_DEPLOY_PATH" envDefault:"storage/deploy"`
	ScaffoldCommand    string        `env:"VINI_SCAFFOLD_COMMAND" envDefault:"npx -y create-eth@latest -s hardhat -e NikolaiL/miniapp {slug}"`
	CodegenCommand     string        `env:"VINI_CODEGEN_COMMAND" envDefault:"droid exec -f prompt.md --skip-permissions-unsafe"`
	ScaffoldTimeout    time.Duration `env:"VINI_SCAFFOLD_TIMEOUT" envDefault:"900s"`
	PromptTimeout      time.Duration `env:"VINI_PROMPT_TIMEOUT" envDefault:"60s"`
	CodegenTimeout     time.Duration `env:"VINI_CODEGEN_TIMEOUT" envDefault:"1200s"`
}

// publicRPCEndpoints maps chain ids to public json rpc endpoints
var publicRPCEndpoints = map[string]string{
	"1":        "https://eth.llamarpc.com",
	"11155111": "https://sepolia.infura.io/v3/9aa3d95b3bc440fa88ea12eaa4456161",
	"8453":     "https://base.llamarpc.com",
	"84532":    "https://sepolia.base.org",
	"137":      "https://polygon.llamarpc.com",
	"80001":    "https://rpc-mumbai.maticvigil.com",
	"42161":    "https://arb1.arbitrum.io/rpc",
	"421614":   "https://sepolia-rollup.arbitrum.io/rpc",
}

// Load reads the configuration from the environment. Values in fileName (.env when empty)
// are loaded first if the file exists. Existing environment variables take precedence.
func Load(fileName string) (*Configuration, error) {
	if fileName == "" {
		fileName = defaultEnvFile
	}
	if err := godotenv.Load(fileName); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading env file %s: %w", fileName, err)
	}

	cfg := &Configuration{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// Sanitize perform some basic checks and sanitizations in the configuration needed by the
// api server. Returns nil if config is acceptable, error otherwise.
func (c *Configuration) Sanitize() error {
	if c.ServerUrl != "" {
		sUrl, err := c.validateServerUrl()
		if err != nil {
			return fmt.Errorf("serverUrl is not a valid URL <%s>: %w", c.ServerUrl, err)
		}
		c.ServerUrl = sUrl
	}
	if err := c.sanitizeCommon(); err != nil {
		return err
	}
	if err := c.Chain.sanitize(); err != nil {
		return err
	}
	return c.Wallet.sanitize()
}

// SanitizePipeline perform some basic checks and sanitizations in the configuration needed
// by the pipeline worker.
func (c *Configuration) SanitizePipeline() error {
	if err := c.sanitizeCommon(); err != nil {
		return err
	}
	return c.Pipeline.sanitize()
}

func (c *Configuration) sanitizeCommon() error {
	if c.Database.URL == "" {
		return missing("VINI_DATABASE_URL")
	}
	switch c.Cache.Provider {
	case CacheProviderRedis, CacheProviderValKey:
		if c.Cache.Url == "" {
			return missing("VINI_CACHE_URL")
		}
	case CacheProviderMemory:
	default:
		return fmt.Errorf("VINI_CACHE_PROVIDER must be one of %s, %s or %s, got <%s>",
			CacheProviderRedis, CacheProviderValKey, CacheProviderMemory, c.Cache.Provider)
	}
	return nil
}

func (c *Configuration) validateServerUrl() (string, error) {
	sUrl, err := url.ParseRequestURI(c.ServerUrl)
	if err != nil {
		return c.ServerUrl, err
	}
	if sUrl.Scheme == "" {
		return c.ServerUrl, fmt.Errorf("server URL must be an absolute URL")
	}
	sUrl.RawQuery = ""
	return strings.Trim(strings.Trim(sUrl.String(), "/"), "?"), nil
}

func (c *Chain) sanitize() error {
	if strings.TrimSpace(c.RPC) == "" {
		return missing("VINI_RPC_URL")
	}
	if strings.TrimSpace(c.ContractAddress) == "" {
		return missing("VINI_CONTRACT")
	}
	if strings.TrimSpace(c.Method) == "" {
		return missing("VINI_METHOD")
	}

	c.ContractAddress = vcommon.NormalizeHex(c.ContractAddress)
	if !common.IsHexAddress(c.ContractAddress) {
		return fmt.Errorf("VINI_CONTRACT is not a valid address <%s>", c.ContractAddress)
	}

	c.Method = vcommon.NormalizeHex(c.Method)
	if !vcommon.IsMethodSelector(c.Method) {
		return fmt.Errorf("VINI_METHOD must be a 4 bytes method selector, got <%s>", c.Method)
	}

	if c.RPCResponseTimeout <= 0 {
		return fmt.Errorf("VINI_RPC_TIMEOUT must be positive")
	}

	rpcURL, err := ResolveRPCURL(c.RPC, c.CustomRPCURL)
	if err != nil {
		return err
	}
	c.RPCURL = rpcURL
	return nil
}

func (w *Wallet) sanitize() error {
	if w.AppID == "" || w.AppSecret == "" {
		return missing("VINI_PRIVY_APP_ID and VINI_PRIVY_APP_SECRET")
	}
	if w.AuthID == "" || w.AuthSecret == "" {
		return missing("VINI_PRIVY_AUTH_ID and VINI_PRIVY_AUTH_SECRET")
	}
	if w.BaseURL == "" {
		return missing("VINI_PRIVY_BASE_URL")
	}
	w.BaseURL = strings.TrimRight(w.BaseURL, "/")
	if w.RetryMax < 0 {
		return fmt.Errorf("VINI_PRIVY_RETRY_MAX cannot be negative")
	}
	if _, err := w.EncryptionKeyBytes(); err != nil {
		return err
	}
	return nil
}

// EncryptionKeyBytes decodes the hex encoded key used to encrypt the authorization private keys
func (w *Wallet) EncryptionKeyBytes() ([]byte, error) {
	if w.EncryptionKey == "" {
		return nil, missing("VINI_WALLET_ENCRYPTION_KEY")
	}
	key, err := hex.DecodeString(strings.TrimPrefix(w.EncryptionKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("VINI_WALLET_ENCRYPTION_KEY is not hex encoded: %w", err)
	}
	if len(key) != encryptionKeyLength {
		return nil, fmt.Errorf("VINI_WALLET_ENCRYPTION_KEY must be %d bytes long, got %d", encryptionKeyLength, len(key))
	}
	return key, nil
}

func (p *Pipeline) sanitize() error {
	if p.FactoryAPIKey == "" {
		return missing("FACTORY_API_KEY")
	}
	if p.PromptTemplatePath == "" {
		return missing("VINI_PROMPT_TEMPLATE_PATH")
	}
	if p.DeployPath == "" {
		return missing("VINI_DEPLOY_PATH")
	}
	if len(strings.Fields(p.ScaffoldCommand)) == 0 {
		return missing("VINI_SCAFFOLD_COMMAND")
	}
	if !strings.Contains(p.ScaffoldCommand, SlugPlaceholder) {
		return fmt.Errorf("VINI_SCAFFOLD_COMMAND must contain the %s placeholder", SlugPlaceholder)
	}
	if len(strings.Fields(p.CodegenCommand)) == 0 {
		return missing("VINI_CODEGEN_COMMAND")
	}
	if p.ScaffoldTimeout <= 0 || p.PromptTimeout <= 0 || p.CodegenTimeout <= 0 {
		return fmt.Errorf("pipeline step timeouts must be positive")
	}
	return nil
}

// ResolveRPCURL returns the rpc endpoint for chain. chain can be a url, used as is, or a
// chain id from the public endpoints table. Unknown chain ids fall back to customRPC.
func ResolveRPCURL(chain, customRPC string) (string, error) {
	chain = strings.TrimSpace(chain)
	if isURL(chain) {
		return chain, nil
	}
	if endpoint, ok := publicRPCEndpoints[chain]; ok {
		return endpoint, nil
	}
	if customRPC = strings.TrimSpace(customRPC); customRPC != "" {
		return customRPC, nil
	}
	return "", fmt.Errorf("unable to resolve RPC URL for chain: %s. Set VINI_CHAIN_RPC_URL or use a supported chain ID", chain)
}

// LogMissing logs every optional value that has not been set. Helps operators spot typos.
func (c *Configuration) LogMissing(ctx context.Context) {
	if c.ServerUrl == "" {
		log.Info(ctx, "VINI_SERVER_URL value is missing")
	}
	if c.Chain.CustomRPCURL == "" {
		log.Debug(ctx, "VINI_CHAIN_RPC_URL value is missing")
	}
	if c.Pipeline.ReferenceDataPath == "" {
		log.Info(ctx, "VINI_REFERENCE_DATA_PATH value is missing")
	}
}

func isURL(s string) bool {
	u, err := url.ParseRequestURI(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

func missing(name string) error {
	return fmt.Errorf("%w: %s must be set", ErrMissingConfig, name)
}

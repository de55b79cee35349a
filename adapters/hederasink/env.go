package hederasink

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	hedera "github.com/hashgraph/hedera-sdk-go/v2"
)

const (
	NetworkMainnet = "mainnet"
	NetworkTestnet = "testnet"
)

var dotenvLoadOnce sync.Once

// ConfigFromEnv reads sink configuration from the environment. A .env file
// in the working directory or any parent is loaded first without overriding
// variables that are already set.
//
//	HEDERA_ACCOUNT_ID      operator account (required)
//	HEDERA_PRIVATE_KEY     operator private key (required)
//	HEDERA_NETWORK         mainnet or testnet (default testnet)
//	LEDGER_EVENT_TOPIC_ID  destination topic (required)
//	LEDGER_SYMBOL          asset symbol stamped on each payload (required)
func ConfigFromEnv() (SinkConfig, error) {
	loadDotEnvIfPresent()

	network := strings.TrimSpace(os.Getenv("HEDERA_NETWORK"))
	if network == "" {
		network = NetworkTestnet
	}

	accountID := strings.TrimSpace(os.Getenv("HEDERA_ACCOUNT_ID"))
	if accountID == "" {
		return SinkConfig{}, fmt.Errorf("HEDERA_ACCOUNT_ID is required")
	}
	privateKey := strings.TrimSpace(os.Getenv("HEDERA_PRIVATE_KEY"))
	if privateKey == "" {
		return SinkConfig{}, fmt.Errorf("HEDERA_PRIVATE_KEY is required")
	}
	topicID := strings.TrimSpace(os.Getenv("LEDGER_EVENT_TOPIC_ID"))
	if topicID == "" {
		return SinkConfig{}, fmt.Errorf("LEDGER_EVENT_TOPIC_ID is required")
	}
	symbol := strings.TrimSpace(os.Getenv("LEDGER_SYMBOL"))
	if symbol == "" {
		return SinkConfig{}, fmt.Errorf("LEDGER_SYMBOL is required")
	}

	return SinkConfig{
		Network:    network,
		AccountID:  accountID,
		PrivateKey: privateKey,
		TopicID:    topicID,
		Symbol:     symbol,
	}, nil
}

// NormalizeNetwork validates a network name, defaulting to testnet.
func NormalizeNetwork(network string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(network))
	if normalized == "" {
		return NetworkTestnet, nil
	}

	switch normalized {
	case NetworkMainnet, NetworkTestnet:
		return normalized, nil
	default:
		return "", fmt.Errorf("unsupported network %q", network)
	}
}

func newNetworkClient(network string) (*hedera.Client, error) {
	normalized, err := NormalizeNetwork(network)
	if err != nil {
		return nil, err
	}

	if normalized == NetworkMainnet {
		return hedera.ClientForMainnet(), nil
	}
	return hedera.ClientForTestnet(), nil
}

// ParsePrivateKey accepts ED25519, ECDSA, or DER-encoded key strings.
func ParsePrivateKey(raw string) (hedera.PrivateKey, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return hedera.PrivateKey{}, fmt.Errorf("private key cannot be empty")
	}

	ed25519Key, edErr := hedera.PrivateKeyFromStringEd25519(candidate)
	if edErr == nil {
		return ed25519Key, nil
	}

	ecdsaKey, ecdsaErr := hedera.PrivateKeyFromStringECDSA(candidate)
	if ecdsaErr == nil {
		return ecdsaKey, nil
	}

	genericKey, genericErr := hedera.PrivateKeyFromString(candidate)
	if genericErr == nil {
		return genericKey, nil
	}

	return hedera.PrivateKey{}, fmt.Errorf(
		"failed to parse private key as ED25519 (%v), ECDSA (%v), or generic (%v)",
		edErr,
		ecdsaErr,
		genericErr,
	)
}

func loadDotEnvIfPresent() {
	dotenvLoadOnce.Do(func() {
		cwd, err := os.Getwd()
		if err != nil {
			return
		}

		current := cwd
		for {
			candidate := filepath.Join(current, ".env")
			if _, statErr := os.Stat(candidate); statErr == nil {
				loadDotEnvFile(candidate)
				return
			}

			parent := filepath.Dir(current)
			if parent == current {
				return
			}
			current = parent
		}
	})
}

func loadDotEnvFile(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if strings.HasPrefix(line, "export ") {
			line = strings.TrimSpace(strings.TrimPrefix(line, "export "))
		}

		separator := strings.Index(line, "=")
		if separator <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:separator])
		if !isValidEnvKey(key) {
			continue
		}
		if _, alreadySet := os.LookupEnv(key); alreadySet {
			continue
		}

		value := strings.TrimSpace(line[separator+1:])
		if len(value) >= 2 {
			first := value[0]
			last := value[len(value)-1]
			if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
				value = value[1 : len(value)-1]
			}
		}

		_ = os.Setenv(key, value)
	}
}

func isValidEnvKey(key string) bool {
	if key == "" {
		return false
	}
	for index, character := range key {
		if (character >= 'A' && character <= 'Z') ||
			(character >= 'a' && character <= 'z') ||
			(index > 0 && character >= '0' && character <= '9') ||
			character == '_' {
			continue
		}
		return false
	}
	return true
}

package config

import (
	"errors"
	"flag"
	"io"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags from the process arguments.
//
// Flags:
//
//	-a listen address in format [host]:[port]
//	-d database DSN
//	-r remote authority base URL
//	-c/-config json file path with configs
//	-hash-key integrity hash key
//	-batch-size entries per remote call
//	-max-retries retry budget per queue entry
//	-probe-timeout connectivity probe timeout (e.g., "5s")
//	-batch-timeout batch dispatch timeout (e.g., "8s")
//	-request-timeout inbound request timeout (e.g., "30s", "1m")
//	-sync-interval background sync period (e.g., "1m")
//	-log-file rotated log file path
func ParseFlags() (*StructuredConfig, error) {
	return parseFlags(os.Args[1:])
}

func parseFlags(args []string) (*StructuredConfig, error) {
	var listenAddress NetAddress
	var databaseDSN string
	var remoteURL string
	var jsonConfigPath string
	var hashKey string
	var batchSize int
	var maxRetries int
	var probeTimeout time.Duration
	var batchTimeout time.Duration
	var requestTimeout time.Duration
	var syncInterval time.Duration
	var logFile string

	fs := flag.NewFlagSet("todo-sync", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.Var(&listenAddress, "a", "Net address host:port")
	fs.StringVar(&databaseDSN, "d", "", "Database DSN")
	fs.StringVar(&remoteURL, "r", "", "Remote authority base URL")
	fs.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	fs.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	fs.StringVar(&hashKey, "hash-key", "", "Integrity hash key")
	fs.IntVar(&batchSize, "batch-size", 0, "Entries per remote call")
	fs.IntVar(&maxRetries, "max-retries", 0, "Retry budget per queue entry")
	fs.DurationVar(&probeTimeout, "probe-timeout", 0, "Connectivity probe timeout (e.g., 5s)")
	fs.DurationVar(&batchTimeout, "batch-timeout", 0, "Batch dispatch timeout (e.g., 8s)")
	fs.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	fs.DurationVar(&syncInterval, "sync-interval", 0, "Background sync period (e.g., 1m)")
	fs.StringVar(&logFile, "log-file", "", "Rotated log file path")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	return &StructuredConfig{
		App: App{
			HashKey: hashKey,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
		},
		Server: Server{
			HTTPAddress:    listenAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Adapter: Adapter{
			RemoteURL:    remoteURL,
			ProbeTimeout: probeTimeout,
			BatchTimeout: batchTimeout,
		},
		Sync: Sync{
			BatchSize:  batchSize,
			MaxRetries: maxRetries,
		},
		Workers:      Workers{SyncInterval: syncInterval},
		Log:          Log{File: logFile},
		JSONFilePath: jsonConfigPath,
	}, nil
}

// String returns a canonical host:port string for a NetAddress.
// It returns an empty string when neither Host nor Port are set.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 || port > 65535 {
		return errors.New("port number must be in range 1..65535")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(host)
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}

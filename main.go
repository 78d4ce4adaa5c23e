// Command gridagent starts the grid-strategy game agent.
//
// It supports three modes:
//  1. "agent" (default) – connects to a contest server over WebSocket and plays matches
//  2. "serve" – runs the debug HTTP server exposing the REST API and an /mcp HTTP endpoint
//  3. "stdio-mcp" – runs an MCP stdio server and spins up an internal HTTP API if none is available
//
// Flags control the contest server URL, player identity, map configuration,
// debug HTTP host/port, config and match directories, and debug logging.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	"github.com/chenchaotao666/xian-game-2025-sub000/api"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/config"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/service"
	"github.com/chenchaotao666/xian-game-2025-sub000/game/session"
	"github.com/chenchaotao666/xian-game-2025-sub000/transport/mcp"
	"github.com/chenchaotao666/xian-game-2025-sub000/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Grid Strategy Agent"
)

// Configuration flags control how the agent starts and which services are enabled.
var (
	serverURL  = flag.String("server", getEnvDefault("GAME_SERVER_URL", "ws://localhost:9000/ws"), "Contest server WebSocket URL")
	agentName  = flag.String("name", getEnvDefault("AGENT_NAME", "gridagent"), "Agent name reported to the contest server")
	playerID   = flag.Int("player", 1, "Player ID to request from the contest server")
	configName = flag.String("config", "default", "Map configuration name to play with")
	matchCount = flag.Int("matches", 1, "Number of matches to play before exiting (agent mode)")
	port       = flag.Int("port", 8080, "Debug HTTP server port")
	host       = flag.String("host", "localhost", "Debug HTTP server host")
	configDir  = flag.String("config-dir", getEnvDefault("CONFIG_DIR", "configs"), "Directory containing map configurations")
	matchDir   = flag.String("match-dir", getEnvDefault("MATCH_DIR", "matches"), "Directory where match records are persisted")
	debug      = flag.Bool("debug", false, "Enable debug logging")
	version    = flag.Bool("version", false, "Show version information")
)

// getEnvDefault returns the environment value for key, or fallback when unset.
func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  agent            Connect to a contest server and play matches (default)\n")
		fmt.Fprintf(os.Stderr, "  serve, http      Run debug HTTP server with REST API and MCP endpoint\n")
		fmt.Fprintf(os.Stderr, "  stdio-mcp        Run MCP stdio server with internal HTTP server\n")
		fmt.Fprintf(os.Stderr, "  mcp-stdio        Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "  mcp              Alias for stdio-mcp\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -server ws://contest:9000/ws     # Play one match against the contest server\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -matches 10                      # Play ten matches back to back\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s serve -port 9090                 # Run debug HTTP server on port 9090\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s stdio-mcp                        # Run MCP stdio server\n", os.Args[0])
	}
}

// main parses flags, initializes services, and starts the selected mode.
func main() {
	// Load .env file if it exists (ignore error if not found)
	if err := godotenv.Load(); err != nil {
		// Only log if it's not a "file not found" error
		if !os.IsNotExist(err) {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	} else {
		log.Println("Loaded environment variables from .env file")
	}

	flag.Parse()

	// Show version if requested
	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	// Setup logging
	if *debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	// Determine mode from command
	args := flag.Args()
	mode := "agent" // default
	if len(args) > 0 {
		mode = args[0]
	}

	log.Printf("Starting %s v%s (mode: %s)", AppName, Version, mode)

	// Initialize services
	agent, matches, configs, err := initializeServices()
	if err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	switch mode {
	case "agent":
		runAgent(agent, matches)

	case "serve", "http":
		runHTTPServer(agent, matches, configs)

	case "stdio-mcp", "mcp-stdio", "mcp":
		runStdioMCPWithInternalServer(agent, matches, configs)

	default:
		log.Fatalf("Unknown mode: %s. Use 'agent' (default), 'serve', or 'stdio-mcp'", mode)
	}
}

// initializeServices wires the config manager, match persistence, and the
// decision agent. The requested map configuration is loaded from the config
// directory; if it is not there the built-in default is used instead.
func initializeServices() (*service.Agent, *session.Manager, *config.Manager, error) {
	configManager, err := config.NewManager(*configDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	cfg, err := configManager.LoadConfig(*configName)
	if err != nil {
		if !errors.Is(err, config.ErrConfigNotFound) {
			return nil, nil, nil, fmt.Errorf("failed to load config %q: %w", *configName, err)
		}
		log.Printf("Config %q not found in %s, using built-in default", *configName, *configDir)
		cfg = configManager.GetDefault()
	}

	persistence, err := session.NewFilePersistence(*matchDir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create match persistence: %w", err)
	}

	matchManager := session.NewManagerWithPersistence(persistence)
	if err := matchManager.LoadPersistedMatches(); err != nil {
		log.Printf("Warning: Failed to load persisted matches: %v", err)
	}

	agent, err := service.NewAgent(cfg, *playerID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create agent: %w", err)
	}

	return agent, matchManager, configManager, nil
}

// runAgent connects to the contest server and plays the requested number of
// matches, recording each one. A short pause between matches gives the server
// time to tear down the previous game.
func runAgent(agent *service.Agent, matches *session.Manager) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	for i := 0; i < *matchCount; i++ {
		if ctx.Err() != nil {
			break
		}

		log.Printf("Connecting to %s (match %d/%d)", *serverURL, i+1, *matchCount)
		client := websocket.NewClient(*serverURL, *agentName, *playerID, agent, matches)
		if err := client.Run(ctx); err != nil {
			if ctx.Err() != nil {
				log.Printf("Interrupted: %v", ctx.Err())
				break
			}
			log.Printf("Match aborted: %v", err)
		}

		if i+1 < *matchCount {
			select {
			case <-time.After(2 * time.Second):
			case <-ctx.Done():
			}
		}
	}

	if err := matches.SaveAll(); err != nil {
		log.Printf("Warning: Failed to persist matches: %v", err)
	}
	log.Printf("Agent stopped after %d match record(s)", matches.Count())
}

// runHTTPServer starts the debug HTTP server with the REST API and an /mcp
// proxy endpoint, then blocks until a shutdown signal arrives.
func runHTTPServer(agent *service.Agent, matches *session.Manager, configs *config.Manager) {
	apiServer := api.NewServer(agent, matches, configs)

	addr := fmt.Sprintf("%s:%d", *host, *port)
	baseURL := fmt.Sprintf("http://%s", addr)
	mcpClient := mcp.NewClient(baseURL)

	// Create main router that combines API and MCP
	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := mcpClient.GetMCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})

	httpServer := &http.Server{
		Addr:         addr,
		Handler:      mainRouter,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Handle shutdown signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}()

	sig := <-stop
	log.Printf("Received signal: %v. Shutting down...", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	if err := matches.SaveAll(); err != nil {
		log.Printf("Warning: Failed to persist matches: %v", err)
	}
	log.Println("Server stopped")
}

// runStdioMCPWithInternalServer runs an MCP stdio server.
// It tries to reuse an external API at http://localhost:8080; if unavailable, it
// starts a minimal internal HTTP API bound to a random loopback port and targets that.
func runStdioMCPWithInternalServer(agent *service.Agent, matches *session.Manager, configs *config.Manager) {
	var baseURL string

	// First, try to connect to external API server at localhost:8080
	externalURL := "http://localhost:8080"
	log.Printf("Checking for external API server at %s...", externalURL)

	testClient := &http.Client{Timeout: 2 * time.Second}
	resp, err := testClient.Get(externalURL + "/api/health")
	if err == nil && resp.StatusCode < 500 {
		resp.Body.Close()
		log.Printf("External API server found at %s, using it for MCP", externalURL)
		baseURL = externalURL
	} else {
		// No external server found, start internal one
		log.Printf("No external API server found, starting internal HTTP server")

		listener, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			log.Fatalf("Failed to get available port: %v", err)
		}

		internalPort := listener.Addr().(*net.TCPAddr).Port
		internalAddr := fmt.Sprintf("127.0.0.1:%d", internalPort)

		log.Printf("Starting internal HTTP server on %s for MCP stdio", internalAddr)

		httpServer := &http.Server{
			Handler: api.NewServer(agent, matches, configs),
		}

		go func() {
			if err := httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Printf("Internal HTTP server error: %v", err)
			}
		}()

		// Wait a moment for the server to be ready
		time.Sleep(100 * time.Millisecond)

		baseURL = fmt.Sprintf("http://%s", internalAddr)
	}

	mcpClient := mcp.NewClient(baseURL)

	if baseURL == externalURL {
		log.Println("MCP stdio server ready (using external HTTP server)")
	} else {
		log.Println("MCP stdio server ready (using internal HTTP server)")
	}

	if err := server.ServeStdio(mcpClient.GetMCPServer()); err != nil {
		log.Fatalf("MCP stdio server error: %v", err)
	}
}

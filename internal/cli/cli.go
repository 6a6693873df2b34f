// Package cli wires the extraction pipeline and the character ledger into
// the lexicanum command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"lexicanum/internal/bookscan"
	"lexicanum/internal/character"
	"lexicanum/internal/config"
	"lexicanum/internal/entry"
	"lexicanum/internal/graph"
	"lexicanum/internal/library"
	"lexicanum/internal/parser"
	"lexicanum/internal/similarity"
	"lexicanum/internal/store"
	"lexicanum/internal/worker"
)

// Execute runs the CLI application.
func Execute() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd := &cobra.Command{
		Use:           "lexicanum",
		Short:         "Extract structured records from rulebook text and manage character progression",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(parseCmd())
	rootCmd.AddCommand(scanCmd())
	rootCmd.AddCommand(publishCmd())
	rootCmd.AddCommand(similarCmd())
	rootCmd.AddCommand(prereqsCmd())
	rootCmd.AddCommand(characterCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// categoryParsers maps the declared section categories of the `parse`
// command to their parser functions.
func categoryParsers() map[string]parser.Func {
	return map[string]parser.Func{
		"talent-table":            parser.Adapt(parser.ParseTalentTable),
		"talent-prose":            parser.Adapt(parser.ParseTalentProse),
		"advances":                parser.Adapt(parser.ParseAdvancesTable),
		"characteristic-advances": parser.Adapt(parser.ParseCharacteristicAdvances),
		"divination":              parser.Adapt(parser.ParseDivinationTable),
		"psychic-powers":          parser.Adapt(parser.ParsePsychicPowers),
		"ranged-weapons":          parser.Adapt(parser.ParseRangedWeaponsTable),
		"melee-weapons":           parser.Adapt(parser.ParseMeleeWeaponsTable),
		"armour":                  parser.Adapt(parser.ParseArmourTable),
		"equipment":               blockFunc(parser.ParseEquipmentBlocks),
		"items":                   blockFunc(parser.ParseItemBlocks),
		"skills":                  blockFunc(parser.ParseSkillBlocks),
		"careers":                 blockFunc(parser.ParseCareerBlocks),
		"monsters":                blockFunc(parser.ParseMonsterBlocks),
	}
}

// blockFunc lifts a never-failing block parser into the shared signature.
func blockFunc(fn func(string) []*entry.Block) parser.Func {
	return func(text string, _ parser.Options) ([]entry.Entry, error) {
		blocks := fn(text)
		out := make([]entry.Entry, len(blocks))
		for i, b := range blocks {
			out[i] = b
		}
		return out, nil
	}
}

func parseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <category> <input.txt>",
		Short: "Parse one text file of a declared category into entry records",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			source, _ := cmd.Flags().GetString("source")
			output, _ := cmd.Flags().GetString("output")
			appendTo, _ := cmd.Flags().GetString("append")
			return runParse(args[0], args[1], parser.Options{Page: page, Source: source}, output, appendTo)
		},
	}

	cmd.Flags().Int("page", 0, "Rulebook page number recorded on each entry")
	cmd.Flags().String("source", "", "Source label recorded on each entry")
	cmd.Flags().String("output", "", "Write entries to this JSON file instead of stdout")
	cmd.Flags().String("append", "", "Append entries to this JSON library file")

	return cmd
}

func runParse(category, inputPath string, opts parser.Options, output, appendTo string) error {
	parsers := categoryParsers()
	fn, ok := parsers[category]
	if !ok {
		names := make([]string, 0, len(parsers))
		for name := range parsers {
			names = append(names, name)
		}
		sort.Strings(names)
		return fmt.Errorf("unknown category %q (valid: %s)", category, strings.Join(names, ", "))
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("read input file: %w", err)
	}

	entries, err := fn(string(data), opts)
	if err != nil {
		return fmt.Errorf("parse %s: %w", category, err)
	}
	records := entry.Records(entries)

	log.Info().Str("category", category).Str("input", inputPath).Int("entries", len(records)).Msg("Parsed section")

	if appendTo != "" {
		if _, err := library.Append(records, appendTo); err != nil {
			return err
		}
		fmt.Printf("Appended %d entries to %s.\n", len(records), appendTo)
		return nil
	}
	if output != "" {
		if err := library.Save(records, output); err != nil {
			return err
		}
		fmt.Printf("Wrote %d entries to %s.\n", len(records), output)
		return nil
	}

	encoded, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}

func scanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <book.txt...>",
		Short: "Auto-discover and parse every recognizable section in whole books",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			source, _ := cmd.Flags().GetString("source")
			return runScan(args, output, source)
		},
	}

	cmd.Flags().String("output", "", "Library file to append to (default LIBRARY_PATH)")
	cmd.Flags().String("source", "", "Source label for all entries (default: each file's name)")

	return cmd
}

func runScan(paths []string, output, source string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if output == "" {
		output = cfg.LibraryPath
	}
	if source == "" {
		source = cfg.SourceLabel
	}

	scanner := bookscan.NewScanner()
	pool := worker.NewPool(cfg.WorkerCount,
		func(ctx context.Context, path string) ([]entry.Entry, error) {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read book file: %w", err)
			}
			opts := parser.Options{Source: source}
			if opts.Source == "" {
				opts.Source = filepath.Base(path)
			}
			return scanner.Scan(string(data), opts)
		},
	)

	done, failed := worker.Partition(pool.Execute(ctx, paths))

	var records []map[string]any
	for _, task := range failed {
		log.Error().Err(task.Err).Str("file", task.Input).Msg("Scan failed")
	}
	for _, task := range done {
		records = append(records, entry.Records(task.Result)...)
		log.Info().Str("file", task.Input).Int("entries", len(task.Result)).Msg("Scanned book")
	}

	if len(records) == 0 {
		return fmt.Errorf("no recognizable sections in %d file(s)", len(paths))
	}

	if _, err := library.Append(records, output); err != nil {
		return err
	}

	fmt.Printf("Scanned %d file(s): %d entries appended to %s (%d file(s) failed).\n",
		len(paths), len(records), output, len(failed))
	return nil
}

func publishCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "publish [library.json]",
		Short: "Push a parsed library into PostgreSQL, pgvector, and the Neo4j prerequisite graph",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			return runPublish(path)
		},
	}
	return cmd
}

func runPublish(libraryPath string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()
	if libraryPath == "" {
		libraryPath = cfg.LibraryPath
	}

	records, err := library.Load(libraryPath)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		log.Warn().Str("path", libraryPath).Msg("Library is empty, nothing to publish")
		return nil
	}

	pgPool, neo4jDriver, err := initDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer pgPool.Close()
	defer neo4jDriver.Close(ctx)

	entryStore := store.NewEntryStore(pgPool)
	if err := entryStore.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure entry schema: %w", err)
	}

	vectorizer := similarity.NewVectorizer(cfg.EmbeddingDimensions)
	vectorStore := similarity.NewVectorStore(pgPool, vectorizer.Dims())
	if err := vectorStore.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure vector schema: %w", err)
	}

	// Store entry payloads, batched so progress is visible on big shelves.
	var storeRecords []store.Record
	var vectorRecords []similarity.VectorRecord
	for _, rec := range records {
		sr, err := store.BuildRecord(rec)
		if err != nil {
			return err
		}
		storeRecords = append(storeRecords, sr)
		vectorRecords = append(vectorRecords, similarity.VectorRecord{
			Hash:   sr.Hash,
			Label:  sr.Type + ": " + sr.Name,
			Vector: vectorizer.Embed(recordText(rec)),
		})
	}

	inserted := 0
	for _, batch := range worker.Batch(storeRecords, cfg.BatchSize) {
		n, err := entryStore.Upsert(ctx, batch)
		if err != nil {
			return fmt.Errorf("store entries: %w", err)
		}
		inserted += n
	}

	for _, batch := range worker.Batch(vectorRecords, cfg.BatchSize) {
		if err := vectorStore.Store(ctx, batch); err != nil {
			return fmt.Errorf("store embeddings: %w", err)
		}
	}

	// Prerequisite graph: registry careers plus every parsed advance.
	builder := graph.NewBuilder(neo4jDriver)
	if err := builder.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("ensure graph schema: %w", err)
	}
	for _, c := range character.DefaultRegistry().Careers() {
		if err := builder.UpsertCareer(ctx, c); err != nil {
			return fmt.Errorf("publish career graph: %w", err)
		}
	}
	if nodes := advanceNodes(records); len(nodes) > 0 {
		if err := builder.UpsertAdvances(ctx, nodes); err != nil {
			return fmt.Errorf("publish advance graph: %w", err)
		}
	}

	log.Info().
		Int("records", len(records)).
		Int("inserted", inserted).
		Str("library", libraryPath).
		Msg("Publish complete")

	fmt.Printf("Published %d entries (%d new) from %s.\n", len(records), inserted, libraryPath)

	counts, err := entryStore.CountByType(ctx)
	if err != nil {
		return fmt.Errorf("count stored entries: %w", err)
	}
	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	sort.Strings(types)
	for _, t := range types {
		fmt.Printf("  %s: %d\n", t, counts[t])
	}
	return nil
}

// recordText assembles the text an entry is embedded from.
func recordText(rec map[string]any) string {
	var parts []string
	for _, key := range []string{"name", "characteristic", "description", "effect", "quote"} {
		if v, ok := rec[key].(string); ok && v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " ")
}

// advanceNodes extracts graph nodes from serialized advance records.
func advanceNodes(records []map[string]any) []graph.AdvanceNode {
	var nodes []graph.AdvanceNode
	for _, rec := range records {
		if t, _ := rec["type"].(string); t != "advance" {
			continue
		}
		node := graph.AdvanceNode{}
		node.Name, _ = rec["name"].(string)
		if node.Name == "" {
			continue
		}
		node.Career, _ = rec["career"].(string)
		node.Rank, _ = rec["rank"].(string)
		node.XPCost = intFromAny(rec["cost"])
		if prereqs, ok := rec["prerequisites"].([]any); ok {
			for _, p := range prereqs {
				if s, ok := p.(string); ok {
					node.Prerequisites = append(node.Prerequisites, s)
				}
			}
		} else if prereqs, ok := rec["prerequisites"].([]string); ok {
			node.Prerequisites = prereqs
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// intFromAny handles both freshly built records (int) and records decoded
// from library JSON (float64).
func intFromAny(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		return int(n)
	}
	return 0
}

func similarCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "similar <text>",
		Short: "Find published entries with near-duplicate text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			topK, _ := cmd.Flags().GetInt("top")
			return runSimilar(args[0], topK)
		},
	}

	cmd.Flags().Int("top", 5, "Number of matches to return")

	return cmd
}

func runSimilar(text string, topK int) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("connect PostgreSQL: %w", err)
	}
	defer pgPool.Close()

	vectorizer := similarity.NewVectorizer(cfg.EmbeddingDimensions)
	vectorStore := similarity.NewVectorStore(pgPool, vectorizer.Dims())

	matches, err := vectorStore.Search(ctx, vectorizer.Embed(text), topK)
	if err != nil {
		return err
	}

	if len(matches) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, m := range matches {
		fmt.Printf("%.3f  %s\n", m.Score, m.Label)
	}
	return nil
}

func prereqsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prereqs <advance>",
		Short: "List the full prerequisite chain of an advance from the graph",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			careerName, _ := cmd.Flags().GetString("career")
			return runPrereqs(args[0], careerName)
		},
	}

	cmd.Flags().String("career", "", "Also list the advances this career offers")

	return cmd
}

func runPrereqs(advanceName, careerName string) error {
	ctx, cancel := setupContext()
	defer cancel()

	cfg := config.Load()

	driver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		return fmt.Errorf("connect Neo4j: %w", err)
	}
	defer driver.Close(ctx)

	querier := graph.NewQuerier(driver)
	chain, err := querier.PrerequisiteChain(ctx, advanceName)
	if err != nil {
		return err
	}
	if len(chain) == 0 {
		fmt.Printf("%s has no recorded prerequisites.\n", advanceName)
	} else {
		fmt.Printf("%s requires:\n", advanceName)
		for _, name := range chain {
			fmt.Printf("  - %s\n", name)
		}
	}

	if careerName != "" {
		advances, err := querier.CareerAdvances(ctx, careerName)
		if err != nil {
			return err
		}
		fmt.Printf("%s offers %d advance(s):\n", careerName, len(advances))
		for _, name := range advances {
			fmt.Printf("  - %s\n", name)
		}
	}
	return nil
}

// setupContext creates a cancellable context with signal handling.
func setupContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		log.Warn().Msg("Received shutdown signal, cancelling...")
		cancel()
	}()

	return ctx, cancel
}

// initDependencies creates the shared PostgreSQL pool and Neo4j driver.
func initDependencies(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, neo4j.DriverWithContext, error) {
	pgPool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect PostgreSQL: %w", err)
	}
	if err := pgPool.Ping(ctx); err != nil {
		pgPool.Close()
		return nil, nil, fmt.Errorf("ping PostgreSQL: %w", err)
	}
	log.Info().Msg("Connected to PostgreSQL")

	neo4jDriver, err := neo4j.NewDriverWithContext(cfg.Neo4jURI, neo4j.BasicAuth(cfg.Neo4jUser, cfg.Neo4jPassword, ""))
	if err != nil {
		pgPool.Close()
		return nil, nil, fmt.Errorf("connect Neo4j: %w", err)
	}
	if err := neo4jDriver.VerifyConnectivity(ctx); err != nil {
		pgPool.Close()
		neo4jDriver.Close(ctx)
		return nil, nil, fmt.Errorf("verify Neo4j connectivity: %w", err)
	}
	log.Info().Msg("Connected to Neo4j")

	return pgPool, neo4jDriver, nil
}

// Command import_progress loads an exported progress document into the
// configured store, or writes a learner's export document to a file.
//
// The API server hydrates each learner's tree once and keeps it in memory, so
// stop the server before importing and start it again afterwards. Otherwise
// its next write for that learner overwrites the imported tree. The memory
// backend lives only inside one process and is refused.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"class-companion/internal/config"
	"class-companion/internal/course"
	"class-companion/internal/logger"
	"class-companion/internal/service"
	"class-companion/internal/storage"
	"class-companion/internal/validation"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func main() {
	learnerID := flag.String("learner", service.DefaultLearnerID, "learner id")
	file := flag.String("file", "", "path of the export document")
	export := flag.Bool("export", false, "write the learner's progress to -file instead of importing it")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "-file is required")
		flag.Usage()
		os.Exit(2)
	}
	if errs := validation.NewValidator().ValidateLearnerID(*learnerID, service.DefaultLearnerID); len(errs) > 0 {
		fmt.Fprintf(os.Stderr, "invalid -learner: %v\n", errs)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := checkBackend(cfg.Storage.Backend); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	log := logger.Get()

	courseStore, err := course.Load(cfg.Course.Path)
	if err != nil {
		log.Fatal("Failed to load course", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, closeStore, err := storage.Open(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to open storage", zap.String("backend", cfg.Storage.Backend), zap.Error(err))
	}
	defer closeStore()

	progress := service.NewProgressService(courseStore, service.NewProgressPersistence(store, cfg.StoreKeyPrefix()))

	if *export {
		if err := exportTo(ctx, progress, *learnerID, *file); err != nil {
			log.Fatal("Export failed", zap.Error(err))
		}
		log.Info("Progress exported", zap.String("learner", *learnerID), zap.String("file", *file))
		return
	}

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal("Failed to read export document", zap.String("path", *file), zap.Error(err))
	}
	res, err := progress.ImportData(ctx, service.WriteScope{LearnerID: *learnerID}, raw)
	if err != nil {
		log.Fatal("Import failed", zap.String("path", *file), zap.Error(err))
	}
	log.Info("Progress imported", zap.String("learner", *learnerID), zap.Int64("version", res.Version))
}

// checkBackend rejects backends that do not outlive this process.
func checkBackend(backend string) error {
	if backend == "" || backend == storage.BackendMemory {
		return fmt.Errorf("storage backend %q keeps progress in process memory; configure %s or %s",
			storage.BackendMemory, storage.BackendRedis, storage.BackendSQL)
	}
	return nil
}

func exportTo(ctx context.Context, progress service.ProgressService, learnerID, path string) error {
	doc, err := progress.ExportData(ctx, learnerID)
	if err != nil {
		return err
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export document: %w", err)
	}
	return os.WriteFile(path, raw, 0o644)
}

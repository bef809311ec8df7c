// Package scanner 提供并发扫描调度能力。
// 该层负责目录遍历、任务分发、并发执行和结果归并，不负责词法细节。
package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"srcstats/internal/decomment"
	"srcstats/internal/ignore"
	"srcstats/internal/languages"
	"srcstats/internal/model"
	"srcstats/internal/normalize"
	"srcstats/internal/stats"
)

// DefaultMaxFileSize 是单文件大小上限的默认值。
const DefaultMaxFileSize uint64 = 10 << 20

var (
	// ErrEmptyPath 表示传入了空路径。
	ErrEmptyPath = errors.New("scan path is empty")
	// ErrUnsupportedFile 表示显式指定的文件无法路由到任何已注册语言。
	ErrUnsupportedFile = errors.New("unsupported file")
	// ErrFileTooLarge 表示文件超过大小上限。
	ErrFileTooLarge = errors.New("file too large")
)

// FileError 描述某个文件在某个阶段的失败。
type FileError struct {
	Path string
	Op   string
	Size uint64
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// Options 是扫描服务的配置。
type Options struct {
	// Workers 是并发 worker 数，<= 0 时使用 CPU 核数。
	Workers int
	// MaxFileSize 是单文件字节数上限，0 表示不限制。
	MaxFileSize uint64
	// PerFile 为 true 时在结果中输出逐文件明细。
	PerFile bool
	// Ignore 是目录遍历时的忽略规则。
	Ignore ignore.Options
}

// Service 是扫描服务对象。
type Service struct {
	registry *languages.Registry
	options  Options
	logger   *zap.Logger
}

// scanTarget 是一个已校验过的扫描入口。
type scanTarget struct {
	absolutePath string
	displayPath  string
	isDir        bool
	fileType     languages.FileType
	matcher      *ignore.Matcher
}

// scanTask 表示一个待分析文件任务。
type scanTask struct {
	absolutePath string
	displayPath  string
	fileType     languages.FileType
	explicit     bool
}

// workerState 是单个 worker 的私有产物，worker 结束后才会被读取。
type workerState struct {
	collection *stats.Collection
	files      []model.FileReport
	errors     []model.ScanError
	buffer     bytes.Buffer
}

// NewService 创建扫描服务。logger 为 nil 时不输出日志。
func NewService(registry *languages.Registry, options Options, logger *zap.Logger) *Service {
	if options.Workers <= 0 {
		options.Workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		registry: registry,
		options:  options,
		logger:   logger,
	}
}

// ScanPaths 扫描若干目录或文件。
//
// 目录中的无法识别文件被静默跳过，读取失败或超限的文件记录到 Errors 后继续；
// 显式指定的文件必须可识别且可读，否则整个扫描失败。
func (s *Service) ScanPaths(ctx context.Context, paths ...string) (model.ScanResult, error) {
	var result model.ScanResult
	startedAt := time.Now()

	if len(paths) == 0 {
		paths = []string{"."}
	}

	targets, err := s.prepareTargets(paths)
	if err != nil {
		return result, err
	}

	scanCtx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)

	tasks := make(chan scanTask, s.options.Workers*4)
	states := make([]*workerState, s.options.Workers)

	var workerGroup sync.WaitGroup
	for i := range states {
		state := &workerState{collection: stats.NewCollection()}
		states[i] = state
		workerGroup.Go(func() {
			s.runWorker(scanCtx, cancel, state, tasks)
		})
	}

	var walkErrors []model.ScanError
	go func() {
		defer close(tasks)
		walkErrors = s.enqueueTargets(scanCtx, targets, tasks)
	}()

	workerGroup.Wait()

	if cause := context.Cause(scanCtx); cause != nil {
		return result, cause
	}

	collection := stats.NewCollection()
	for _, state := range states {
		collection.Merge(state.collection)
		result.Files = append(result.Files, state.files...)
		walkErrors = append(walkErrors, state.errors...)
	}

	for _, target := range targets {
		result.ScannedPaths = append(result.ScannedPaths, target.absolutePath)
	}
	result.Errors = walkErrors
	if result.Errors == nil {
		result.Errors = make([]model.ScanError, 0)
	}
	s.buildReports(&result, collection)
	result.Elapsed = time.Since(startedAt)

	s.logger.Info("scan finished",
		zap.Uint64("files", result.Total.Files),
		zap.Int("languages", len(result.Languages)),
		zap.Int("errors", len(result.Errors)),
		zap.Duration("elapsed", result.Elapsed),
	)
	return result, nil
}

// prepareTargets 解析并校验全部入口路径。显式文件的路由和大小错误在这里直接返回。
func (s *Service) prepareTargets(paths []string) ([]scanTarget, error) {
	targets := make([]scanTarget, 0, len(paths))

	for _, rawPath := range paths {
		trimmedPath := strings.TrimSpace(rawPath)
		if trimmedPath == "" {
			return nil, ErrEmptyPath
		}

		absolutePath, err := filepath.Abs(trimmedPath)
		if err != nil {
			return nil, fmt.Errorf("resolve absolute path: %w", err)
		}

		info, err := os.Stat(absolutePath)
		if err != nil {
			return nil, &FileError{Path: trimmedPath, Op: "stat", Err: err}
		}

		target := scanTarget{
			absolutePath: absolutePath,
			displayPath:  filepath.ToSlash(filepath.Clean(trimmedPath)),
			isDir:        info.IsDir(),
		}

		if target.isDir {
			matcher, err := ignore.New(absolutePath, s.options.Ignore)
			if err != nil {
				return nil, fmt.Errorf("load ignore rules for %s: %w", trimmedPath, err)
			}
			target.matcher = matcher
			targets = append(targets, target)
			continue
		}

		fileType, ok := s.registry.Lookup(absolutePath)
		if !ok {
			unsupported := ErrUnsupportedFile
			if detected := s.registry.Detect(absolutePath, nil); detected != "" {
				unsupported = fmt.Errorf("%w (looks like %s)", ErrUnsupportedFile, detected)
			}
			return nil, &FileError{Path: trimmedPath, Op: "route", Err: unsupported}
		}
		if err := s.checkSize(uint64(info.Size())); err != nil {
			return nil, &FileError{Path: trimmedPath, Op: "stat", Size: uint64(info.Size()), Err: err}
		}

		target.fileType = fileType
		targets = append(targets, target)
	}

	return targets, nil
}

// enqueueTargets 把全部入口展开为任务。返回遍历过程中记录下来的错误。
func (s *Service) enqueueTargets(ctx context.Context, targets []scanTarget, tasks chan<- scanTask) []model.ScanError {
	var scanErrors []model.ScanError
	seen := make(map[string]bool)

	send := func(task scanTask) bool {
		if seen[task.absolutePath] {
			return true
		}
		seen[task.absolutePath] = true

		select {
		case tasks <- task:
			return true
		case <-ctx.Done():
			return false
		}
	}

	for _, target := range targets {
		if !target.isDir {
			if !send(scanTask{
				absolutePath: target.absolutePath,
				displayPath:  target.displayPath,
				fileType:     target.fileType,
				explicit:     true,
			}) {
				return scanErrors
			}
			continue
		}

		walkErrors, err := s.enqueueDirectory(ctx, target, send)
		scanErrors = append(scanErrors, walkErrors...)
		if err != nil {
			return scanErrors
		}
	}
	return scanErrors
}

// enqueueDirectory 遍历目录并把可识别语言文件推入任务队列。
func (s *Service) enqueueDirectory(ctx context.Context, target scanTarget, send func(scanTask) bool) ([]model.ScanError, error) {
	var scanErrors []model.ScanError

	record := func(displayPath string, err error) {
		s.logger.Warn("skip file", zap.String("path", displayPath), zap.Error(err))
		scanErrors = append(scanErrors, model.ScanError{Path: displayPath, Error: err.Error()})
	}

	err := filepath.WalkDir(target.absolutePath, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		relativePath, relErr := filepath.Rel(target.absolutePath, path)
		if relErr != nil {
			relativePath = path
		}
		displayPath := filepath.ToSlash(filepath.Join(target.displayPath, relativePath))

		if walkErr != nil {
			record(displayPath, walkErr)
			return nil
		}

		if target.matcher.Skip(path, entry.IsDir()) {
			s.logger.Debug("ignore path", zap.String("path", displayPath))
			if entry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.IsDir() {
			return nil
		}

		fileType, ok := s.registry.Lookup(path)
		if !ok {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			record(displayPath, err)
			return nil
		}
		if err := s.checkSize(uint64(info.Size())); err != nil {
			record(displayPath, err)
			return nil
		}

		if !send(scanTask{
			absolutePath: path,
			displayPath:  displayPath,
			fileType:     fileType,
		}) {
			return ctx.Err()
		}
		return nil
	})

	return scanErrors, err
}

// runWorker 执行文件读取与统计。显式文件失败时取消整个扫描。
func (s *Service) runWorker(ctx context.Context, cancel context.CancelCauseFunc, state *workerState, tasks <-chan scanTask) {
	for task := range tasks {
		if ctx.Err() != nil {
			continue
		}

		if err := s.scanFile(state, task); err != nil {
			if task.explicit {
				cancel(err)
				continue
			}
			s.logger.Warn("skip file", zap.String("path", task.displayPath), zap.Error(err))
			state.errors = append(state.errors, model.ScanError{
				Path:  task.displayPath,
				Error: err.Error(),
			})
		}
	}
}

// scanFile 读取单个文件并写入 worker 私有统计。
// 处理链：控制字符过滤 -> 原始统计 -> 原地去注释 -> 行规整 -> 去注释统计。
func (s *Service) scanFile(state *workerState, task scanTask) error {
	data, err := s.readFile(&state.buffer, task.absolutePath)
	if err != nil {
		return &FileError{Path: task.displayPath, Op: "read", Err: err}
	}

	language := state.collection.Language(task.fileType.Language)

	data = normalize.ControlBytes(data)
	language.AccumulateRaw(task.fileType.Subtype, data)
	rawLines := stats.CountLines(data)

	data = decomment.InPlace(data, task.fileType.Dialect)
	data = normalize.Lines(data)
	language.AccumulateDecommented(task.fileType.Subtype, data)

	if s.options.PerFile {
		state.files = append(state.files, model.FileReport{
			Path:             task.displayPath,
			Language:         task.fileType.Language,
			Subtype:          task.fileType.Subtype,
			RawLines:         rawLines,
			DecommentedLines: stats.CountLines(data),
		})
	}
	return nil
}

// readFile 把文件内容读入 worker 复用的缓冲区，返回的切片在下次读取前有效。
func (s *Service) readFile(buffer *bytes.Buffer, path string) ([]byte, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	buffer.Reset()

	var reader io.Reader = file
	if s.options.MaxFileSize > 0 {
		reader = io.LimitReader(file, int64(s.options.MaxFileSize)+1)
	}
	if _, err := buffer.ReadFrom(reader); err != nil {
		return nil, err
	}
	if err := s.checkSize(uint64(buffer.Len())); err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

// checkSize 校验文件大小。
func (s *Service) checkSize(size uint64) error {
	if s.options.MaxFileSize == 0 || size <= s.options.MaxFileSize {
		return nil
	}
	return fmt.Errorf("%w: %s exceeds %s", ErrFileTooLarge,
		humanize.IBytes(size), humanize.IBytes(s.options.MaxFileSize))
}

// buildReports 把合并后的统计转换为输出模型。语言与子类型按注册表顺序排列。
func (s *Service) buildReports(result *model.ScanResult, collection *stats.Collection) {
	sort.Slice(result.Files, func(i int, j int) bool {
		return result.Files[i].Path < result.Files[j].Path
	})
	sort.Slice(result.Errors, func(i int, j int) bool {
		return result.Errors[i].Path < result.Errors[j].Path
	})

	result.Languages = make([]model.LanguageReport, 0)
	for _, language := range s.registry.Languages() {
		item, ok := collection.Lookup(language.Name)
		if !ok || item.IsEmpty() {
			continue
		}

		result.Languages = append(result.Languages, model.LanguageReport{
			Language:    language.Name,
			Dialect:     language.Dialect.String(),
			Extensions:  language.Extensions(),
			Raw:         variantReport(language, item.Raw()),
			Decommented: variantReport(language, item.Decommented()),
		})
	}

	raw := collection.TotalWithComments()
	result.Total = model.TotalReport{
		Files:       raw.Files().Count(),
		Raw:         raw.Report(),
		Decommented: collection.TotalDecommented().Report(),
	}
}

// variantReport 生成某个口径下的子类型明细与合计，空子类型不输出。
func variantReport(language languages.Language, cells stats.SubtypeStatistics) model.VariantReport {
	report := model.VariantReport{
		Subtypes: make([]model.SubtypeReport, 0, len(language.Subtypes)),
		Total:    cells.Total().Report(),
	}

	for _, subtype := range language.Subtypes {
		cell := cells.Get(subtype.Name)
		if cell.IsEmpty() {
			continue
		}
		report.Subtypes = append(report.Subtypes, model.SubtypeReport{
			Subtype:    subtype.Name,
			Title:      subtype.Title,
			Statistics: cell.Report(),
		})
	}
	return report
}

package scanner

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
)

// prepareBenchmarkFile 创建一个用于单文件扫描基准测试的 C++ 文件。
func prepareBenchmarkFile(b *testing.B) string {
	b.Helper()

	tempDir := b.TempDir()
	filePath := filepath.Join(tempDir, "large.cpp")

	lines := make([]string, 0, 6000)
	lines = append(lines, "#include <cstdio>", "")
	for i := 0; i < 2000; i++ {
		lines = append(lines, "int value"+strconv.Itoa(i)+" = 1; // inline comment")
		lines = append(lines, "/* block comment */")
		lines = append(lines, "const char* s"+strconv.Itoa(i)+" = \"// not a comment\";")
	}

	if err := os.WriteFile(filePath, []byte(strings.Join(lines, "\n")), 0o644); err != nil {
		b.Fatalf("write benchmark fixture failed: %v", err)
	}
	return filePath
}

// prepareBenchmarkDirectory 创建目录扫描基准测试数据。
func prepareBenchmarkDirectory(b *testing.B) string {
	b.Helper()

	tempDir := b.TempDir()
	for i := 0; i < 200; i++ {
		cppFile := filepath.Join(tempDir, "src", "c"+strconv.Itoa(i)+".cpp")
		csFile := filepath.Join(tempDir, "app", "s"+strconv.Itoa(i)+".cs")

		if err := os.MkdirAll(filepath.Dir(cppFile), 0o755); err != nil {
			b.Fatalf("mkdir cpp fixture dir failed: %v", err)
		}
		if err := os.MkdirAll(filepath.Dir(csFile), 0o755); err != nil {
			b.Fatalf("mkdir cs fixture dir failed: %v", err)
		}

		if err := os.WriteFile(cppFile, []byte("int x = 1; // c\n/* b */ int y;\n"), 0o644); err != nil {
			b.Fatalf("write cpp fixture failed: %v", err)
		}
		if err := os.WriteFile(csFile, []byte("var s = @\"// c\"; // c\n"), 0o644); err != nil {
			b.Fatalf("write cs fixture failed: %v", err)
		}
	}
	return tempDir
}

// BenchmarkScanSingleFile 衡量单文件扫描性能。
func BenchmarkScanSingleFile(b *testing.B) {
	filePath := prepareBenchmarkFile(b)
	service := newTestService(Options{Workers: 1})

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := service.ScanPaths(context.Background(), filePath); err != nil {
			b.Fatalf("scan failed: %v", err)
		}
	}
}

// BenchmarkScanDirectory 衡量目录并发扫描性能。
func BenchmarkScanDirectory(b *testing.B) {
	dirPath := prepareBenchmarkDirectory(b)
	service := newTestService(Options{Workers: 8})

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := service.ScanPaths(context.Background(), dirPath); err != nil {
			b.Fatalf("scan failed: %v", err)
		}
	}
}

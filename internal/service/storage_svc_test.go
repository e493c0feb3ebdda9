package service

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// ==================== 工厂 ====================

func TestNewStorageProvider(t *testing.T) {
	if _, err := NewStorageProvider(&StorageConfig{Provider: "ftp"}); err == nil {
		t.Error("未知提供者应返回错误")
	}

	storage, err := NewStorageProvider(&StorageConfig{Provider: "local", BasePath: t.TempDir()})
	if err != nil {
		t.Fatalf("创建本地存储失败: %v", err)
	}
	if _, ok := storage.(*LocalStorage); !ok {
		t.Errorf("local 应返回 *LocalStorage, got %T", storage)
	}
}

// ==================== 本地存储 ====================

func TestLocalStorage_PutDelete(t *testing.T) {
	dir := t.TempDir()
	storage, _ := NewLocalStorage(&StorageConfig{
		BasePath: dir,
		BaseURL:  "http://localhost:8080/uploads",
	})

	url, err := storage.Put(context.Background(), "productImageUrl/4213-photo.png", []byte("img"), "")
	if err != nil {
		t.Fatalf("写入失败: %v", err)
	}
	if url != "http://localhost:8080/uploads/productImageUrl/4213-photo.png" {
		t.Errorf("url = %s", url)
	}

	path := filepath.Join(dir, "productImageUrl", "4213-photo.png")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("文件未写入: %v", err)
	}
	if string(data) != "img" {
		t.Errorf("文件内容 = %q", data)
	}

	// 同 key 覆盖写入
	if _, err := storage.Put(context.Background(), "productImageUrl/4213-photo.png", []byte("v2"), ""); err != nil {
		t.Fatalf("覆盖写入失败: %v", err)
	}
	data, _ = os.ReadFile(path)
	if string(data) != "v2" {
		t.Error("同 key 应覆盖旧内容")
	}

	if err := storage.Delete(context.Background(), url); err != nil {
		t.Fatalf("删除失败: %v", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("删除后文件应不存在")
	}

	// 无法解析的 URL
	if err := storage.Delete(context.Background(), "https://other.example.com/x.png"); err == nil {
		t.Error("外部 URL 应返回错误")
	}
}

// ==================== S3 URL 规则 ====================

func TestS3Storage_PublicURL(t *testing.T) {
	s := &S3Storage{bucket: "sourcexpet", region: "us-east-1"}

	url := s.publicURL("productImageUrl/4213-p.png")
	want := "https://sourcexpet.s3.us-east-1.amazonaws.com/productImageUrl/4213-p.png"
	if url != want {
		t.Errorf("url = %s, want %s", url, want)
	}
	if s.extractKey(url) != "productImageUrl/4213-p.png" {
		t.Errorf("extractKey = %s", s.extractKey(url))
	}

	// CDN 域名优先
	s.cdnDomain = "cdn.sourcexpet.com"
	url = s.publicURL("productImageUrl/4213-p.png")
	if url != "https://cdn.sourcexpet.com/productImageUrl/4213-p.png" {
		t.Errorf("cdn url = %s", url)
	}
	if s.extractKey(url) != "productImageUrl/4213-p.png" {
		t.Errorf("cdn extractKey = %s", s.extractKey(url))
	}
}

// ==================== 工具函数 ====================

func TestJoinKey(t *testing.T) {
	cases := []struct {
		basePath string
		key      string
		want     string
	}{
		{"", "a/b.png", "a/b.png"},
		{"uploads", "a/b.png", "uploads/a/b.png"},
		{"uploads/", "a/b.png", "uploads/a/b.png"},
	}
	for _, c := range cases {
		if got := joinKey(c.basePath, c.key); got != c.want {
			t.Errorf("joinKey(%q, %q) = %q, want %q", c.basePath, c.key, got, c.want)
		}
	}
}

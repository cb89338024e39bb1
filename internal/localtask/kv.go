package localtask

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// ErrKeyNotFound 键不存在
var ErrKeyNotFound = errors.New("键不存在")

// KV 本地持久化的键值抽象。
// Store 通过注入的 KV 读写整包序列化数据，不直接触碰存储介质，
// 便于在文件、Redis 等后端之间切换，也便于测试注入内存实现。
type KV interface {
	Get(key string) ([]byte, error) // 键不存在时返回 ErrKeyNotFound
	Set(key string, value []byte) error
}

// ── 文件实现 ──

// FileKV 以目录下单文件存储每个键，键名即文件名。
// 写入经由临时文件 + rename，保证单进程下不会读到半截数据。
type FileKV struct {
	dir string
	mu  sync.Mutex
}

// NewFileKV 创建文件后端，目录不存在时自动创建
func NewFileKV(dir string) (*FileKV, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileKV{dir: dir}, nil
}

func (f *FileKV) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *FileKV) Get(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrKeyNotFound
		}
		return nil, err
	}
	return data, nil
}

func (f *FileKV) Set(key string, value []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	tmp := f.path(key) + ".tmp"
	if err := os.WriteFile(tmp, value, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, f.path(key))
}

// ── 内存实现（测试用） ──

// MemKV 纯内存键值实现
type MemKV struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemKV 创建内存后端
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string][]byte)}
}

func (m *MemKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, ErrKeyNotFound
	}
	return v, nil
}

func (m *MemKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/logger"
	"github.com/iWorld-y/idea_radar/app/idea_radar/pkg/model"
)

// SchemaVersion 缓存文件格式版本，版本不一致视为未命中
const SchemaVersion = 1

// DefaultValidity 缓存默认有效期
const DefaultValidity = time.Hour

// Entry 缓存文件内容
type Entry struct {
	Version   int              `json:"version"`
	Timestamp int64            `json:"timestamp"` // epoch millis
	Data      model.RawDataset `json:"data"`
}

// CapturedAt 写入时间
func (e *Entry) CapturedAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// Error 缓存读写失败，只记录日志，不向上抛出
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Store 单文件缓存，只保存最近一次成功采集的数据集
type Store struct {
	path     string
	validity time.Duration
	now      func() time.Time
}

// Option 缓存选项
type Option func(*Store)

// WithClock 替换时钟，测试用
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New 创建缓存，validity 为 0 时使用默认有效期
func New(path string, validity time.Duration, opts ...Option) *Store {
	if validity <= 0 {
		validity = DefaultValidity
	}
	s := &Store{path: path, validity: validity, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load 返回仍在有效期内的数据集；文件缺失、损坏、版本不符或过期均返回 false
func (s *Store) Load() (model.RawDataset, bool) {
	entry, err := s.read()
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Failure("读取缓存失败", &Error{Op: "load", Path: s.path, Err: err})
		}
		return nil, false
	}

	if entry.Version != SchemaVersion {
		logger.Log.Infof("缓存版本不匹配 (%d != %d)，视为未命中", entry.Version, SchemaVersion)
		return nil, false
	}
	if entry.Data == nil {
		return nil, false
	}

	age := s.now().Sub(entry.CapturedAt())
	if age >= s.validity || age < 0 {
		logger.Log.Debugf("缓存已过期 (age=%s)", age)
		return nil, false
	}
	return entry.Data, true
}

// Save 覆盖写入缓存；失败只记录日志
func (s *Store) Save(dataset model.RawDataset) {
	entry := Entry{
		Version:   SchemaVersion,
		Timestamp: s.now().UnixMilli(),
		Data:      dataset,
	}
	if err := s.write(&entry); err != nil {
		logger.Failure("写入缓存失败", &Error{Op: "save", Path: s.path, Err: err})
	}
}

func (s *Store) read() (*Entry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return &entry, nil
}

// write 先写临时文件再重命名，避免并发读到半截文件
func (s *Store) write(entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

package media

import (
	"context"
	"io"
	"sync"
)

// MemoryStore 内存对象存储，用于测试和未配置 MinIO 的本地开发
type MemoryStore struct {
	mutex   sync.RWMutex
	objects map[string][]byte
	BaseURL string
}

func NewMemoryStore(baseURL string) *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte), BaseURL: baseURL}
}

func (s *MemoryStore) Put(_ context.Context, objectName string, reader io.Reader, _ int64, _ string) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.objects[objectName] = data
	return nil
}

func (s *MemoryStore) Remove(_ context.Context, objectName string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.objects, objectName)
	return nil
}

func (s *MemoryStore) URL(objectName string) string {
	return s.BaseURL + "/" + objectName
}

// Get 读取对象内容
func (s *MemoryStore) Get(objectName string) ([]byte, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	data, ok := s.objects[objectName]
	return data, ok
}

// Len 对象数量
func (s *MemoryStore) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.objects)
}

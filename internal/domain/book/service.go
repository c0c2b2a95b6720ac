package book

import (
	"context"
	"strings"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 封装表单字段的规范化与校验,存储层只接收合法的图书
// 2. 不负责缓存失效,由应用层在写操作成功后触发
type Service interface {
	// AddBook 新增图书
	// 业务规则:书名、作者、ISBN、简介必填;分类和封面有默认值
	AddBook(ctx context.Context, fields Fields) (*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id string) (*Book, error)

	// EditBook 编辑图书(整体替换除ID外的所有字段)
	EditBook(ctx context.Context, id string, fields Fields) (*Book, error)

	// DeleteBook 删除图书
	DeleteBook(ctx context.Context, id string) error

	// ListAll 读取全部图书(列表缓存的数据来源)
	ListAll(ctx context.Context) ([]Book, error)
}

// service 领域服务实现
type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// AddBook 新增图书
func (s *service) AddBook(ctx context.Context, fields Fields) (*Book, error) {
	// 1. 构建并校验实体
	b, err := NewBook(fields)
	if err != nil {
		return nil, err
	}

	// 2. 持久化,回填存储分配的ID
	id, err := s.repo.Create(ctx, b)
	if err != nil {
		return nil, err
	}
	b.ID = id

	return b, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id string) (*Book, error) {
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	b.FillDefaults()
	return b, nil
}

// EditBook 编辑图书
func (s *service) EditBook(ctx context.Context, id string, fields Fields) (*Book, error) {
	// 1. ID校验
	id, err := requireID(id)
	if err != nil {
		return nil, err
	}

	// 2. 查询图书
	b, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. 整体替换字段
	if err := b.Apply(fields); err != nil {
		return nil, err
	}
	b.ID = id

	// 4. 持久化
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	return b, nil
}

// DeleteBook 删除图书
func (s *service) DeleteBook(ctx context.Context, id string) error {
	id, err := requireID(id)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// ListAll 读取全部图书,缺失的分类和封面按默认值补全
func (s *service) ListAll(ctx context.Context) ([]Book, error) {
	books, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range books {
		books[i].FillDefaults()
	}
	return books, nil
}

// requireID 校验ID非空
func requireID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrMissingID
	}
	return id, nil
}

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试针对运行中的API进程
// 通过BOOKSHELF_E2E_URL指定地址(如http://localhost:8080),未设置时跳过

const (
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// BookData 图书详情
type BookData struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Author        string `json:"author"`
	ISBN          string `json:"isbn"`
	PublishedYear *int   `json:"published_year"`
	Genre         string `json:"genre"`
	ImageURL      string `json:"image_url"`
	Description   string `json:"description"`
}

// BookItem 列表项
type BookItem struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Genre string `json:"genre"`
	Links struct {
		Details string `json:"details"`
		Edit    string `json:"edit"`
		Delete  string `json:"delete"`
	} `json:"links"`
}

// BookListData 列表响应
type BookListData struct {
	List         []BookItem `json:"list"`
	Status       string     `json:"status"`
	Message      string     `json:"message"`
	Page         int        `json:"page"`
	TotalPages   int        `json:"total_pages"`
	Matched      int        `json:"matched"`
	ShowControls bool       `json:"show_controls"`
}

// BaseURL 读取被测服务地址,未配置时跳过测试
func BaseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("BOOKSHELF_E2E_URL")
	if url == "" {
		t.Skip("BOOKSHELF_E2E_URL not set")
	}
	return url
}

// Do 发送请求并解析统一响应
func Do(t *testing.T, method, url string, data interface{}) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	require.NoError(t, json.Unmarshal(raw, &result), "解析JSON响应失败: %s", string(raw))
	return &result
}

// Decode 解析data字段
func Decode(t *testing.T, resp *Response, out interface{}) {
	t.Helper()
	require.Equal(t, 0, resp.Code, "请求失败: %s", resp.Message)
	require.NoError(t, json.Unmarshal(resp.Data, out))
}

// RunTag 本次运行的唯一标记,用于在共享数据中搜索自己创建的图书
func RunTag() string {
	return fmt.Sprintf("e2e%d", time.Now().UnixNano())
}

// CreateBook 新增图书并返回详情
func CreateBook(t *testing.T, base, title, genre string) BookData {
	t.Helper()

	resp := Do(t, http.MethodPost, base+"/api/v1/books", map[string]string{
		"title":       title,
		"author":      "Integration",
		"isbn":        "isbn-" + title,
		"genre":       genre,
		"description": "created by integration test",
	})
	var data BookData
	Decode(t, resp, &data)
	return data
}

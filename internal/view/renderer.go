// Package view 渲染服务端页面。
// 模板随二进制嵌入，每个页面由 layout/base.html、includes/ 与页面文件组合而成。
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"yatube-go/internal/model"
	"yatube-go/internal/pagination"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates
var templateFS embed.FS

// ListFragment 帖子列表片段名，首页缓存的就是它的渲染结果
const ListFragment = "post_list"

// ImageURLs 图片对象名到访问地址
type ImageURLs interface {
	URL(objectName string) string
	ThumbURL(objectName string) string
}

// ListData 帖子列表片段的数据
type ListData struct {
	Posts      []model.Post
	Page       pagination.Page
	Query      url.Values // 翻页链接需要保留的查询参数
	ShowGroup  bool
	ShowAuthor bool
}

// Renderer 实现 gin 的 HTMLRender
type Renderer struct {
	pages     map[string]*template.Template
	fragments *template.Template
}

var _ render.HTMLRender = (*Renderer)(nil)

// New 解析全部模板，images 为空时不输出图片
func New(images ImageURLs) (*Renderer, error) {
	root := template.New("root").Funcs(funcMap(images))
	root, err := root.ParseFS(templateFS, "templates/layout/*.html", "templates/includes/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout: %w", err)
	}

	fragments, err := root.Clone()
	if err != nil {
		return nil, err
	}

	r := &Renderer{pages: make(map[string]*template.Template), fragments: fragments}

	err = fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := strings.TrimPrefix(p, "templates/")
		dir := path.Dir(name)
		if dir == "layout" || dir == "includes" {
			return nil
		}

		page, err := root.Clone()
		if err != nil {
			return err
		}
		if _, err := page.ParseFS(templateFS, p); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		r.pages[name] = page
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Instance 返回页面渲染器，name 为 templates/ 下的相对路径
func (r *Renderer) Instance(name string, data any) render.Render {
	page, ok := r.pages[name]
	if !ok {
		return missingTemplate{name: name}
	}
	return render.HTML{Template: page, Name: "base", Data: data}
}

// Has 模板是否存在
func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Fragment 渲染可缓存的片段
func (r *Renderer) Fragment(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := r.fragments.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render fragment %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

type missingTemplate struct{ name string }

func (m missingTemplate) Render(http.ResponseWriter) error {
	return fmt.Errorf("template %s not found", m.name)
}

func (m missingTemplate) WriteContentType(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
}

func funcMap(images ImageURLs) template.FuncMap {
	return template.FuncMap{
		"imageURL": func(objectName string) string {
			if images == nil || objectName == "" {
				return ""
			}
			return images.URL(objectName)
		},
		"thumbURL": func(objectName string) string {
			if images == nil || objectName == "" {
				return ""
			}
			return images.ThumbURL(objectName)
		},
		"date": func(t time.Time) string {
			return t.Format("02.01.2006")
		},
		"linebreaks": func(s string) template.HTML {
			escaped := template.HTMLEscapeString(s)
			return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
		},
		"pageURL": func(query url.Values, n int) string {
			q := url.Values{}
			for k, v := range query {
				q[k] = v
			}
			q.Set("page", strconv.Itoa(n))
			return "?" + q.Encode()
		},
		"fieldError": func(errs map[string]string, field string) string {
			return errs[field]
		},
		"deref": func(id *int64) int64 {
			if id == nil {
				return 0
			}
			return *id
		},
		"dict": func(pairs ...any) (map[string]any, error) {
			if len(pairs)%2 != 0 {
				return nil, fmt.Errorf("dict: odd number of arguments")
			}
			m := make(map[string]any, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				key, ok := pairs[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict: key %v is not a string", pairs[i])
				}
				m[key] = pairs[i+1]
			}
			return m, nil
		},
		"year": func() int {
			return time.Now().Year()
		},
	}
}

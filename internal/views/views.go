// Package views 加载内嵌模板：整页模板交给 gin 渲染，
// 帖子列表片段单独渲染成 HTML 以便缓存
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"
	"yatube/internal/utils"

	"github.com/gin-contrib/multitemplate"
)

//go:embed templates
var files embed.FS

const (
	layoutGlob   = "templates/layouts/*.html"
	includeGlob  = "templates/includes/*.html"
	fragmentGlob = "templates/fragments/*.html"
)

// Pages 所有整页模板，键即 handler 中使用的模板名
var Pages = []string{
	"posts/index.html",
	"posts/group_list.html",
	"posts/profile.html",
	"posts/follow.html",
	"posts/post_detail.html",
	"posts/create_post.html",
	"users/login.html",
	"users/signup.html",
	"groups/manage.html",
	"error.html",
}

// FuncMap 模板函数
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"dict": func(values ...interface{}) (map[string]interface{}, error) {
			if len(values)%2 != 0 {
				return nil, fmt.Errorf("invalid dict call")
			}
			dict := make(map[string]interface{}, len(values)/2)
			for i := 0; i < len(values); i += 2 {
				key, ok := values[i].(string)
				if !ok {
					return nil, fmt.Errorf("dict keys must be strings")
				}
				dict[key] = values[i+1]
			}
			return dict, nil
		},
		"add": func(a, b int) int {
			return a + b
		},
		"renderText": utils.RenderText,
		"date": func(t time.Time) string {
			return t.Format("2006-01-02 15:04")
		},
		"timeAgo": timeAgo,
	}
}

func timeAgo(t time.Time) string {
	seconds := int(time.Since(t).Seconds())
	switch {
	case seconds < 60:
		return "刚刚"
	case seconds < 3600:
		return fmt.Sprintf("%d分钟前", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%d小时前", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%d天前", seconds/86400)
	}
	return t.Format("2006-01-02")
}

// NewRenderer 组装整页模板：layout + includes + fragments + view
func NewRenderer() (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()
	funcMap := FuncMap()

	for _, name := range Pages {
		tmpl, err := template.New("base.html").Funcs(funcMap).
			ParseFS(files, layoutGlob, includeGlob, fragmentGlob, "templates/views/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", name, err)
		}
		r.Add(name, tmpl)
	}
	return r, nil
}

// Fragments 不带布局的模板片段
type Fragments struct {
	tmpl *template.Template
}

func NewFragments() (*Fragments, error) {
	tmpl, err := template.New("fragments").Funcs(FuncMap()).ParseFS(files, includeGlob, fragmentGlob)
	if err != nil {
		return nil, fmt.Errorf("parse fragments: %w", err)
	}
	return &Fragments{tmpl: tmpl}, nil
}

// Render 执行名为 name 的片段，返回渲染好的 HTML
func (f *Fragments) Render(name string, data interface{}) (template.HTML, error) {
	var buf bytes.Buffer
	if err := f.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}

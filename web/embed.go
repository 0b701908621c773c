// Package web 页面模板和静态资源
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html static/*
var files embed.FS

// Templates 解析全部页面模板
func Templates() (*template.Template, error) {
	return template.ParseFS(files, "templates/*.html")
}

// Static 静态资源文件系统
func Static() fs.FS {
	sub, err := fs.Sub(files, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Package product は商品の出品・更新・削除・検索のドメインロジックを提供する。
//
// InputSanitizer はユーザー入力の商品フィールドをサニタイズし、
// XSS攻撃などのセキュリティリスクから閲覧者を保護する。
// bluemondayライブラリの許可リストベースのポリシーを使用する。
package product

import "github.com/microcosm-cc/bluemonday"

// InputSanitizer は商品フィールドのサニタイズを行う。
// タイトル・カテゴリはタグを一切許可せず、説明文はUGC向けの
// 安全なタグのみを通過させる。ポリシーはスレッドセーフ。
type InputSanitizer struct {
	strict *bluemonday.Policy
	ugc    *bluemonday.Policy
}

// NewInputSanitizer はInputSanitizerを生成する。
func NewInputSanitizer() *InputSanitizer {
	return &InputSanitizer{
		strict: bluemonday.StrictPolicy(),
		ugc:    bluemonday.UGCPolicy(),
	}
}

// Title はタイトルからすべてのHTMLタグを除去する。
func (s *InputSanitizer) Title(raw string) string {
	return s.strict.Sanitize(raw)
}

// Category はカテゴリからすべてのHTMLタグを除去する。
func (s *InputSanitizer) Category(raw string) string {
	return s.strict.Sanitize(raw)
}

// Description は説明文からscript等の危険なタグを除去し、
// UGC向けの安全なタグのみを残す。空文字列には空文字列を返す。
func (s *InputSanitizer) Description(raw string) string {
	return s.ugc.Sanitize(raw)
}

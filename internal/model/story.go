// Package model はドメインモデルを定義する。
package model

import "time"

// Story はユーザーが投稿するストーリーを表す。
// AuthorIDは作成後に変更できない。
type Story struct {
	ID         string
	Title      string
	Content    string
	Summary    *string
	Genre      Genre
	AuthorID   string
	CreatedAt  time.Time
	PictureURL *string
}

// Genre はストーリーのジャンルを表す。固定の列挙値のみ有効。
type Genre string

const (
	GenreFantasy  Genre = "Fantasy"
	GenreSciFi    Genre = "Science Fiction"
	GenreRomance  Genre = "Romance"
	GenreThriller Genre = "Thriller"
	GenreHorror   Genre = "Horror"
	GenreMystery  Genre = "Mystery"
	GenreDrama    Genre = "Drama"
	GenreComedy   Genre = "Comedy"
)

// Genres は有効なジャンルの一覧。
var Genres = []Genre{
	GenreFantasy, GenreSciFi, GenreRomance, GenreThriller,
	GenreHorror, GenreMystery, GenreDrama, GenreComedy,
}

// IsValidGenre はジャンルが有効な列挙値かどうかを返す。
func IsValidGenre(g Genre) bool {
	for _, v := range Genres {
		if g == v {
			return true
		}
	}
	return false
}

package daterange

import (
	"errors"
	"fmt"
	"time"
)

// Layout は日付の文字列表現（YYYY-MM-DD）
const Layout = "2006-01-02"

// secondsPerDay は暦日1日分の秒数。time.Duration は約292年で溢れるため秒で数える
const secondsPerDay = 24 * 60 * 60

var (
	ErrInvalidRange = errors.New("宿泊期間は1泊以上である必要があります")
	ErrInvalidDate  = errors.New("日付の形式が不正です")
)

// DateRange は半開区間 [CheckIn, CheckOut) の宿泊期間を表す
// 時刻は持たず、どちらも UTC の 0 時に正規化された暦日として扱う
type DateRange struct {
	CheckIn  time.Time
	CheckOut time.Time
}

// New は暦日に正規化した DateRange を作成する
// 前後関係の検証は行わない（逆転した期間と0泊の期間を呼び出し側で区別するため）
func New(checkIn, checkOut time.Time) DateRange {
	return DateRange{CheckIn: Truncate(checkIn), CheckOut: Truncate(checkOut)}
}

// Parse は YYYY-MM-DD 形式の2つの日付から DateRange を作成する
func Parse(checkIn, checkOut string) (DateRange, error) {
	in, err := ParseDate(checkIn)
	if err != nil {
		return DateRange{}, err
	}
	out, err := ParseDate(checkOut)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{CheckIn: in, CheckOut: out}, nil
}

// ParseDate は YYYY-MM-DD 形式の日付を解析する
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

// Truncate は t の暦日（t 自身のロケーション基準）を UTC 0 時で返す
func Truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Today は now の UTC における暦日を返す
func Today(now time.Time) time.Time {
	return Truncate(now.UTC())
}

// Overlaps は2つの期間が1日でも重なるかを返す
// チェックアウト日と次のチェックイン日が同じ場合は重ならない
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && other.CheckIn.Before(r.CheckOut)
}

// Nights は宿泊数を返す。0泊以下の場合は ErrInvalidRange
func (r DateRange) Nights() (int, error) {
	n := int((r.CheckOut.Unix() - r.CheckIn.Unix()) / secondsPerDay)
	if n <= 0 {
		return 0, ErrInvalidRange
	}
	return n, nil
}

// IsReversed はチェックイン日がチェックアウト日より後かを返す
func (r DateRange) IsReversed() bool {
	return r.CheckIn.After(r.CheckOut)
}

// IsNotBefore はチェックイン日が基準日以降かを返す
func (r DateRange) IsNotBefore(reference time.Time) bool {
	return !r.CheckIn.Before(Truncate(reference))
}

func (r DateRange) String() string {
	return r.CheckIn.Format(Layout) + "/" + r.CheckOut.Format(Layout)
}

package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Scale は1単位あたりの内部表現の数（小数第1位まで）
const Scale = 10

var (
	ErrInvalidAmount = errors.New("金額の形式が不正です")
	ErrTooPrecise    = errors.New("金額は小数第1位までです")
	ErrOverflow      = errors.New("金額が上限を超えています")
)

// Money は 0.1 単位の整数で保持する固定小数点金額
// 浮動小数点の累積誤差を避けるため、計算はすべて整数で行う
type Money int64

// FromTenths は 0.1 単位の整数から Money を作成する
func FromTenths(tenths int64) Money {
	return Money(tenths)
}

// FromUnits は整数金額から Money を作成する
func FromUnits(units int64) Money {
	return Money(units * Scale)
}

// FromFloat は JSON 数値などの float64 から Money を作成する
// 小数第2位以下に 0 以外の値がある場合は ErrTooPrecise
func FromFloat(f float64) (Money, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, ErrInvalidAmount
	}
	scaled := f * Scale
	rounded := math.Round(scaled)
	if math.Abs(scaled-rounded) > 1e-6 {
		return 0, ErrTooPrecise
	}
	if rounded > math.MaxInt64 || rounded < math.MinInt64 {
		return 0, ErrOverflow
	}
	return Money(rounded), nil
}

// Parse は "100", "100.0", "99.5" 形式の文字列を解析する
func Parse(s string) (Money, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	neg := false
	if s[0] == '-' || s[0] == '+' {
		neg = s[0] == '-'
		s = s[1:]
	}
	intPart, fracPart, _ := strings.Cut(s, ".")
	if intPart == "" {
		return 0, ErrInvalidAmount
	}
	units, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil || units < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	var tenth int64
	for i, c := range fracPart {
		if c < '0' || c > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
		}
		if i == 0 {
			tenth = int64(c - '0')
			continue
		}
		if c != '0' {
			return 0, ErrTooPrecise
		}
	}
	if units > (math.MaxInt64-tenth)/Scale {
		return 0, ErrOverflow
	}
	v := units*Scale + tenth
	if neg {
		v = -v
	}
	return Money(v), nil
}

// Tenths は 0.1 単位の整数値を返す
func (m Money) Tenths() int64 {
	return int64(m)
}

// Multiply は金額を n 倍する（オーバーフロー検出付き）
func (m Money) Multiply(n int64) (Money, error) {
	if n == 0 || m == 0 {
		return 0, nil
	}
	v := int64(m) * n
	if v/n != int64(m) {
		return 0, ErrOverflow
	}
	return Money(v), nil
}

// IsNegative は負の金額かを返す
func (m Money) IsNegative() bool {
	return m < 0
}

// String は "300.0" 形式の文字列を返す
func (m Money) String() string {
	v := int64(m)
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%d", sign, v/Scale, v%Scale)
}

// MarshalJSON は金額を JSON 数値（300.0）として出力する
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON は JSON 数値または文字列を受け付ける
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "null" {
		return nil
	}
	v, err := Parse(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Value は database/sql 用に NUMERIC の文字列表現を返す
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan は NUMERIC カラムの値を読み込む
func (m *Money) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*m = 0
		return nil
	case []byte:
		p, err := Parse(string(v))
		if err != nil {
			return err
		}
		*m = p
		return nil
	case string:
		p, err := Parse(v)
		if err != nil {
			return err
		}
		*m = p
		return nil
	case int64:
		*m = FromUnits(v)
		return nil
	case float64:
		p, err := FromFloat(v)
		if err != nil {
			return err
		}
		*m = p
		return nil
	default:
		return fmt.Errorf("%w: 型 %T は変換できません", ErrInvalidAmount, src)
	}
}

package message

import (
	"fmt"
	"strings"

	"github.com/okuri-dev/okuri/internal/order"
)

// CustomerOpening is the required first line of every customer confirmation,
// generated or not.
const CustomerOpening = "ご注文ありがとうございます。内容を以下の通り承りました。"

// SpecialCharsWarning is prepended to the admin notification when the
// placard inscription needs manual special-character handling.
const SpecialCharsWarning = "【重要：特殊漢字・指示内容の確認必須】"

// Templates is the deterministic fallback: pure field interpolation, no
// clock, no randomness. Identical order and price always yield
// byte-identical text, which makes it the tested source of truth for the
// message contract.
type Templates struct{}

func (Templates) CustomerMessage(o order.Order, price string) string {
	var b strings.Builder
	b.WriteString(CustomerOpening)
	b.WriteString("\n\n【ご注文内容の控え】\n")
	fmt.Fprintf(&b, "・御家名: %s 家\n", o.FamilyName)
	fmt.Fprintf(&b, "・お品物: %s（%s）\n", o.FlowerType, price)
	fmt.Fprintf(&b, "・お名札: %s\n", o.PlacardName)
	fmt.Fprintf(&b, "・葬儀場所: %s\n", o.FuneralLocation)
	fmt.Fprintf(&b, "・開式日時: %s\n", o.FuneralDateTime)
	fmt.Fprintf(&b, "・ご注文者様: %s 様\n", o.ContactName)
	b.WriteString("\n【今後の流れ】\n")
	fmt.Fprintf(&b, "・内容確認のため、後ほど担当者よりお電話（%s）を差し上げます。\n", o.PhoneNumber)
	if o.HasSpecialChars {
		b.WriteString("・特殊漢字等の指示に基づき、お電話にて詳細を伺わせていただきます。\n")
	}
	b.WriteString("・お支払いは葬儀終了後、ご指定の住所へ請求書を郵送いたします。\n")
	b.WriteString("・銀行振込の手数料はお客様のご負担となりますこと、何卒ご了承ください。")
	return b.String()
}

func (Templates) AdminMessage(o order.Order, price string) string {
	var b strings.Builder
	if o.HasSpecialChars {
		b.WriteString(SpecialCharsWarning)
		b.WriteString("\n")
	}
	b.WriteString("供花注文をWebから受注しました。\n\n")
	fmt.Fprintf(&b, "・家名: %s家\n", o.FamilyName)
	fmt.Fprintf(&b, "・品目: %s (%s)\n", o.FlowerType, price)
	fmt.Fprintf(&b, "・札名: %s\n", o.PlacardName)
	fmt.Fprintf(&b, "・場所: %s\n", o.FuneralLocation)
	fmt.Fprintf(&b, "・注文者: %s 様\n", o.ContactName)
	fmt.Fprintf(&b, "・連絡先: %s\n", o.PhoneNumber)
	fmt.Fprintf(&b, "・住所: %s %s", o.Address, o.AddressDetail)
	return b.String()
}

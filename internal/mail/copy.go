package mail

import "github.com/ziadkadry99/toldyou-button/internal/i18n"

// Copy snippets may contain inline <code> and <strong> markup; everything
// else is stripped when the email is rendered.
type instructionCopy struct {
	Title string
	Steps []string
}

type faqItem struct {
	Question string
	Answer   string
}

type emailCopy struct {
	Subject         string
	HeroTitle       string
	HeroDescription string
	Badges          []string
	ConfigTitle     string
	ConfigText      string
	ConfigLabel     string
	ConfigEmpty     string
	CodeTitle       string
	CodeHint        string
	LegacyTitle     string
	LegacyHint      string
	InstallTitle    string
	WordPress       instructionCopy
	Shopify         instructionCopy
	HTML            instructionCopy
	PreviewTitle    string
	PreviewText     string
	PreviewItems    []string
	FAQTitle        string
	FAQ             []faqItem
	SupportPrefix   string
	ProvidedBy      string
}

var copies = map[i18n.Language]emailCopy{
	i18n.TraditionalChinese: {
		Subject:         "您的 ToldYou 聊天按鈕程式碼已準備就緒",
		HeroTitle:       "您的聊天按鈕程式碼已準備就緒！",
		HeroDescription: "感謝您使用 ToldYou Button！以下是您的專屬按鈕程式碼。",
		Badges:          []string{"✓ 完全免費", "✓ 無限使用", "✓ 一行程式碼"},
		ConfigTitle:     "WordPress / Shopify 用戶（建議）",
		ConfigText:      "若您使用 ToldYou Button 的 WordPress 外掛或 Shopify App，請複製下方 Config ID 並貼到外掛設定中。",
		ConfigLabel:     "您的 Config ID：",
		ConfigEmpty:     "尚未偵測到 Config ID",
		CodeTitle:       "您的程式碼",
		CodeHint:        "所有設定都安全儲存在雲端，日後更新按鈕不需要重新貼上程式碼。",
		LegacyTitle:     "離線版程式碼",
		LegacyHint:      "若您的網站無法載入外部腳本，可改用這段包含完整設定的程式碼。",
		InstallTitle:    "安裝說明",
		WordPress: instructionCopy{
			Title: "WordPress 網站",
			Steps: []string{
				"登入您的 WordPress 管理後台",
				"前往「外觀」→「自訂」→「額外的 CSS/JS」（或使用類似功能的外掛）",
				"將上方程式碼貼到「頁尾程式碼」區域",
				"點擊「發布」儲存變更",
			},
		},
		Shopify: instructionCopy{
			Title: "Shopify 商店",
			Steps: []string{
				"登入您的 Shopify 管理後台",
				"前往「網路商店」→「佈景主題」→「編輯程式碼」",
				"開啟 <code>layout/theme.liquid</code> 檔案",
				"將程式碼貼到 <code>&lt;/body&gt;</code> 標籤<strong>之前</strong>",
				"點擊「儲存」",
			},
		},
		HTML: instructionCopy{
			Title: "純 HTML 網站",
			Steps: []string{
				"開啟您的 HTML 檔案（通常是 <code>index.html</code>）",
				"將程式碼貼到 <code>&lt;/body&gt;</code> 標籤<strong>之前</strong>",
				"儲存檔案並上傳到伺服器",
			},
		},
		PreviewTitle: "預覽效果",
		PreviewText:  "安裝完成後，您的網站將出現以下互動按鈕：",
		PreviewItems: []string{
			"主按鈕可自訂顏色與位置",
			"支援 LINE、Messenger、WhatsApp 等多平台",
			"行動與桌面裝置皆可完美顯示",
		},
		FAQTitle: "常見問題",
		FAQ: []faqItem{
			{"按鈕沒有出現怎麼辦？", "請確認程式碼已貼在 <code>&lt;/body&gt;</code> 標籤之前，並清除瀏覽器快取重新整理。"},
			{"可以改變按鈕顏色或位置嗎？", "可以！回到 ToldYou Button 重新設定並產生新的程式碼即可。"},
		},
		SupportPrefix: "需要更多協助？歡迎造訪",
		ProvidedBy:    "由",
	},
	i18n.Japanese: {
		Subject:         "ToldYou チャットボタンのコードが準備完了しました",
		HeroTitle:       "チャットボタンのコードが準備できました！",
		HeroDescription: "ToldYou Button をご利用いただきありがとうございます。以下があなた専用のコードです。",
		Badges:          []string{"✓ 完全無料", "✓ 無制限利用", "✓ たった 1 行"},
		ConfigTitle:     "WordPress / Shopify ユーザー向け（推奨）",
		ConfigText:      "WordPress プラグインまたは Shopify アプリをご利用の場合は、以下の Config ID をコピーして設定欄に貼り付けてください。",
		ConfigLabel:     "あなたの Config ID：",
		ConfigEmpty:     "Config ID が検出されませんでした",
		CodeTitle:       "あなたのコード",
		CodeHint:        "設定はすべてクラウドに安全に保存されます。",
		LegacyTitle:     "スタンドアロン版コード",
		LegacyHint:      "外部スクリプトを読み込めないサイトでは、設定を埋め込んだこちらのコードをご利用ください。",
		InstallTitle:    "設置手順",
		WordPress: instructionCopy{
			Title: "WordPress サイト",
			Steps: []string{
				"WordPress 管理画面にログインします",
				"「外観」→「カスタマイズ」→「追加 CSS/JS」（または同等のプラグイン）に移動",
				"上記のコードをフッター用コード欄に貼り付けます",
				"「公開」をクリックして保存します",
			},
		},
		Shopify: instructionCopy{
			Title: "Shopify ストア",
			Steps: []string{
				"Shopify 管理画面にログインします",
				"「オンラインストア」→「テーマ」→「コードを編集」に進みます",
				"<code>layout/theme.liquid</code> など該当するレイアウトファイルを開きます",
				"<code>&lt;/body&gt;</code> タグ<strong>直前</strong>にコードを貼り付けます",
				"「保存」をクリックします",
			},
		},
		HTML: instructionCopy{
			Title: "純粋な HTML サイト",
			Steps: []string{
				"通常は <code>index.html</code> のファイルを開きます",
				"<code>&lt;/body&gt;</code> タグ<strong>直前</strong>にコードを貼り付けます",
				"ファイルを保存してサーバーにアップロードします",
			},
		},
		PreviewTitle: "ボタンのプレビュー",
		PreviewText:  "設置後に表示されるボタンのイメージです：",
		PreviewItems: []string{
			"ブランドカラーに合わせてカスタマイズ可能",
			"LINE や Messenger など複数チャネルをサポート",
			"PC・モバイルの両方で最適表示",
		},
		FAQTitle: "よくある質問",
		FAQ: []faqItem{
			{"ボタンが表示されません。どうすればいいですか？", "コードが <code>&lt;/body&gt;</code> タグの直前に配置されているか確認し、ブラウザのキャッシュをクリアして再読み込みしてください。"},
			{"ボタンの色や位置は変更できますか？", "はい。ToldYou Button で再設定し、新しいコードを作成して貼り替えてください。"},
		},
		SupportPrefix: "サポートが必要な場合は、こちらをご覧ください：",
		ProvidedBy:    "提供：",
	},
	i18n.English: {
		Subject:         "Your ToldYou Chat Button Code is Ready",
		HeroTitle:       "Your chat button code is ready!",
		HeroDescription: "Thanks for using ToldYou Button. Your personalized embed code is below.",
		Badges:          []string{"✓ 100% Free", "✓ Unlimited usage", "✓ Just one line"},
		ConfigTitle:     "WordPress / Shopify users (recommended)",
		ConfigText:      "If you use the ToldYou Button WordPress plugin or Shopify app, copy the Config ID below and paste it into the plugin settings.",
		ConfigLabel:     "Your Config ID:",
		ConfigEmpty:     "Config ID not detected yet",
		CodeTitle:       "Your code",
		CodeHint:        "All settings stay safely in the cloud.",
		LegacyTitle:     "Standalone code",
		LegacyHint:      "If your site cannot load external scripts, use this version with the settings built in.",
		InstallTitle:    "Installation guide",
		WordPress: instructionCopy{
			Title: "WordPress sites",
			Steps: []string{
				"Log in to your WordPress admin dashboard",
				"Navigate to Appearance → Customize → Additional CSS/JS (or use a header/footer plugin)",
				"Paste the code above into the footer scripts area",
				"Click Publish to save your changes",
			},
		},
		Shopify: instructionCopy{
			Title: "Shopify stores",
			Steps: []string{
				"Log in to your Shopify admin",
				"Go to Online Store → Themes → Edit code",
				"Open <code>layout/theme.liquid</code>",
				"Paste the code right before the <code>&lt;/body&gt;</code> tag",
				"Click Save",
			},
		},
		HTML: instructionCopy{
			Title: "Plain HTML sites",
			Steps: []string{
				"Open your main HTML file (usually <code>index.html</code>)",
				"Paste the code right before the <code>&lt;/body&gt;</code> tag",
				"Save the file, upload it to your server, and refresh your site",
			},
		},
		PreviewTitle: "Preview",
		PreviewText:  "Here is what your button will look like once installed:",
		PreviewItems: []string{
			"Customizable colors and position",
			"Supports LINE, Messenger, WhatsApp, email, and more",
			"Responsive layout that works on desktop and mobile",
		},
		FAQTitle: "Frequently asked questions",
		FAQ: []faqItem{
			{"The button isn't showing. What should I check?", "Make sure the script is placed right before the <code>&lt;/body&gt;</code> tag, then clear your browser cache and refresh."},
			{"Can I change the button color or position?", "Yes. Go back to ToldYou Button, reconfigure, and replace the old code with the new one."},
		},
		SupportPrefix: "Need help? Visit",
		ProvidedBy:    "Provided by",
	},
}

func copyFor(l i18n.Language) emailCopy {
	if c, ok := copies[l]; ok {
		return c
	}
	return copies[i18n.WidgetFallback]
}

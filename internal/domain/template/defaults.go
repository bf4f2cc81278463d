package template

import (
	"github.com/google/uuid"
)

// DefaultCanvasWidth и DefaultCanvasHeight — размер страницы A4 в пунктах
const (
	DefaultCanvasWidth  = 595
	DefaultCanvasHeight = 842
)

// Blank создает пустой шаблон заданной категории с холстом по умолчанию
func Blank(category Category) Template {
	return Template{
		ID:           uuid.New().String(),
		Name:         "Nouveau Design",
		Category:     category,
		Elements:     []Element{},
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
	}
}

func authored(id string, kind Kind, content string, x, y, w, h float64) Element {
	return Element{
		ID:       id,
		Kind:     kind,
		Label:    DefaultLabel(kind),
		Content:  content,
		Geometry: Geometry{X: x, Y: y, Width: w, Height: h},
		Style:    defaultStyle(),
	}
}

func title(id, text string, x, y, w float64, align string) Element {
	el := authored(id, KindStaticText, text, x, y, w, 40)
	el.Style.FontSize = 26
	el.Style.FontWeight = "900"
	el.Style.TextAlign = align
	el.Style.Color = "#1f2937"
	return el
}

func infoBlock(id, text string, x, y, w, h float64) Element {
	el := authored(id, KindBoundText, text, x, y, w, h)
	el.Style.FontSize = 10
	el.Style.Color = "#374151"
	el.Style.BackgroundColor = "#f3f4f6"
	el.Style.BorderWidth = 1
	el.Style.Padding = 10
	el.Style.BorderRadius = 8
	return el
}

func signature(id, caption string, x, y, w, h float64) Element {
	el := authored(id, KindSignatureArea, caption, x, y, w, h)
	el.Style.FontSize = 10
	el.Style.Color = "#6b7280"
	el.Style.TextAlign = "center"
	el.Style.BorderWidth = 1
	el.Style.BorderColor = "#d1d5db"
	return el
}

type defaultStrings struct {
	name      string
	titleText string
	align     string
}

// Default возвращает преднабранный шаблон категории для локали.
// Результат детерминирован: одинаковые категория и локаль всегда дают
// одинаковый шаблон, включая id шаблона и элементов.
func Default(category Category, locale string) Template {
	ar := locale == LocaleAR
	t := Template{
		ID:           "tpl-" + string(category) + "-" + locale,
		Category:     category,
		CanvasWidth:  DefaultCanvasWidth,
		CanvasHeight: DefaultCanvasHeight,
	}

	switch category {
	case CategoryQuote:
		t.Name = pick(ar, "Devis Standard", "عرض سعر")
		t.Elements = quoteElements(ar)
	case CategoryContract:
		t.Name = pick(ar, "Contrat de Location", "عقد الإيجار")
		t.Elements = contractElements(ar)
	case CategoryDepositReceipt:
		t.Name = pick(ar, "Reçu de Versement", "وصل دفع")
		t.Elements = depositElements(ar)
	case CategoryInvoice:
		t.Name = pick(ar, "Facture Officielle", "فاتورة رسمية")
		t.Elements = invoiceElements(ar)
	case CategoryCheckIn:
		t.Name = pick(ar, "PV Check-in", "محضر استلام")
		t.Elements = inspectionElements(ar, pick(ar, "PV CHECK-IN", "محضر الاستلام"))
	case CategoryCheckOut:
		t.Name = pick(ar, "PV Check-out", "محضر تسليم")
		t.Elements = inspectionElements(ar, pick(ar, "PV CHECK-OUT", "محضر التسليم"))
	default:
		t.Name = "Nouveau Design"
		t.Elements = []Element{}
	}
	return t
}

func pick(ar bool, fr, arabic string) string {
	if ar {
		return arabic
	}
	return fr
}

func textAlignFor(ar bool) string {
	if ar {
		return "right"
	}
	return "left"
}

func quoteElements(ar bool) []Element {
	align := textAlignFor(ar)

	logo := authored("e1", KindLogo, "", 40, 30, 110, 55)
	head := title("e2", pick(ar, "DEVIS", "عرض سعر"), 300, 40, 250, "right")
	client := infoBlock("e3",
		pick(ar, "Adressé à:\n{{client_name}}\n{{client_phone}}", "إلى الزبون:\n{{client_name}}\n{{client_phone}}"),
		40, 130, 240, 70)
	client.Style.TextAlign = align
	vehicle := infoBlock("e4",
		pick(ar, "Véhicule:\n{{vehicle_brand}} {{vehicle_model}}\n{{vehicle_plate}}", "المركبة:\n{{vehicle_brand}} {{vehicle_model}}\n{{vehicle_plate}}"),
		315, 130, 240, 70)
	vehicle.Style.TextAlign = align

	divider := authored("e5", KindDivider, "", 40, 225, 515, 2)
	table := authored("e6", KindTable, "", 40, 250, 515, 120)

	total := authored("e7", KindBoundText,
		pick(ar, "Montant Total: {{total_amount}} DZ", "المبلغ الإجمالي: {{total_amount}} دج"),
		315, 400, 240, 35)
	total.Style.FontSize = 15
	total.Style.FontWeight = "900"
	total.Style.Color = "#dc2626"
	total.Style.TextAlign = "right"

	sig := signature("e8",
		pick(ar, "Cachet et signature du vendeur", "ختم وتوقيع البائع"),
		40, 560, 230, 120)

	return []Element{logo, head, client, vehicle, divider, table, total, sig}
}

func contractElements(ar bool) []Element {
	align := textAlignFor(ar)

	logo := authored("e1", KindLogo, "", 40, 30, 110, 55)
	head := title("e2", pick(ar, "CONTRAT DE LOCATION", "عقد إيجار مركبة"), 160, 45, 395, "center")

	renter := infoBlock("e3",
		pick(ar,
			"Locataire: {{client_name}}\nTéléphone: {{client_phone}}\nEmail: {{client_email}}",
			"المستأجر: {{client_name}}\nالهاتف: {{client_phone}}\nالبريد: {{client_email}}"),
		40, 130, 250, 85)
	renter.Style.TextAlign = align
	vehicle := infoBlock("e4",
		pick(ar,
			"Véhicule: {{vehicle_brand}} {{vehicle_model}}\nImmatriculation: {{vehicle_plate}}\nRéservation: {{res_number}}\nDate: {{res_date}}",
			"المركبة: {{vehicle_brand}} {{vehicle_model}}\nالترقيم: {{vehicle_plate}}\nالحجز: {{res_number}}\nالتاريخ: {{res_date}}"),
		315, 130, 240, 85)
	vehicle.Style.TextAlign = align

	terms := authored("e5", KindStaticText,
		pick(ar,
			"CONDITIONS ET TERMES:\n\n1. Le locataire accepte de louer le véhicule mentionné ci-dessus\n2. Le conducteur accepte les conditions de sécurité\n3. Le paiement se fait avant la location\n4. Les dégâts doivent être signalés immédiatement",
			"الشروط والأحكام:\n\n1. يوافق المستأجر على استئجار المركبة المذكورة أعلاه\n2. يلتزم السائق بشروط السلامة\n3. يتم الدفع قبل بدء الإيجار\n4. يجب التصريح بأي ضرر فورا"),
		40, 250, 515, 160)
	terms.Style.FontSize = 9
	terms.Style.TextAlign = align

	sigClient := signature("e6", pick(ar, "Signature du locataire", "توقيع المستأجر"), 40, 460, 230, 70)
	sigAgent := signature("e7", pick(ar, "Signature de l'agent", "توقيع الوكيل"), 325, 460, 230, 70)

	return []Element{logo, head, renter, vehicle, terms, sigClient, sigAgent}
}

func depositElements(ar bool) []Element {
	align := textAlignFor(ar)

	logo := authored("e1", KindLogo, "", 40, 30, 110, 55)
	head := title("e2", pick(ar, "REÇU DE VERSEMENT", "وصل دفع"), 200, 45, 355, "right")

	client := infoBlock("e3",
		pick(ar,
			"Client: {{client_name}}\nDossier: {{res_number}}\nDate: {{res_date}}",
			"الزبون: {{client_name}}\nالملف: {{res_number}}\nالتاريخ: {{res_date}}"),
		40, 125, 515, 60)
	client.Style.TextAlign = align

	amounts := authored("e4", KindBoundText,
		pick(ar,
			"Montant Total: {{total_amount}} DZ\nMontant Payé: {{paid_amount}} DZ\nReste à Payer: {{remaining_amount}} DZ",
			"المبلغ الإجمالي: {{total_amount}} دج\nالمبلغ المدفوع: {{paid_amount}} دج\nالمتبقي: {{remaining_amount}} دج"),
		40, 210, 515, 85)
	amounts.Style.FontSize = 13
	amounts.Style.FontWeight = "600"
	amounts.Style.BackgroundColor = "#dbeafe"
	amounts.Style.BorderColor = "#0ea5e9"
	amounts.Style.BorderWidth = 2
	amounts.Style.Padding = 12
	amounts.Style.TextAlign = align

	details := authored("e5", KindBoundText,
		pick(ar,
			"Détails de la réservation:\nVéhicule: {{vehicle_brand}} {{vehicle_model}}\nImmatriculation: {{vehicle_plate}}",
			"تفاصيل الحجز:\nالمركبة: {{vehicle_brand}} {{vehicle_model}}\nالترقيم: {{vehicle_plate}}"),
		40, 320, 515, 70)
	details.Style.FontSize = 10
	details.Style.TextAlign = align

	sigStore := signature("e6", pick(ar, "Cachet de la succursale", "ختم الوكالة"), 40, 430, 230, 90)
	sigClient := signature("e7", pick(ar, "Signature du client", "توقيع الزبون"), 325, 430, 230, 90)

	return []Element{logo, head, client, amounts, details, sigStore, sigClient}
}

func invoiceElements(ar bool) []Element {
	align := textAlignFor(ar)

	logo := authored("e1", KindLogo, "", 40, 40, 140, 60)
	head := title("e2", pick(ar, "FACTURE", "فاتورة"), 350, 40, 205, "right")

	meta := authored("e3", KindBoundText,
		pick(ar,
			"Facture N°: {{res_number}}\nDate: {{current_date}}",
			"فاتورة رقم: {{res_number}}\nالتاريخ: {{current_date}}"),
		350, 85, 205, 40)
	meta.Style.FontSize = 10
	meta.Style.FontWeight = "700"
	meta.Style.TextAlign = "right"

	store := authored("e4", KindBoundText,
		"{{store_name}}\n{{store_address}}\n{{store_phone}} | {{store_email}}",
		40, 120, 260, 70)
	store.Style.FontSize = 9
	store.Style.Color = "#6b7280"
	store.Style.TextAlign = align

	client := infoBlock("e5",
		pick(ar,
			"FACTURÉ À:\n{{client_name}}\n{{client_phone}}",
			"فوترة إلى:\n{{client_name}}\n{{client_phone}}"),
		40, 200, 260, 80)
	client.Style.TextAlign = align

	table := authored("e6", KindTable, "", 40, 320, 515, 150)

	total := authored("e7", KindBoundText,
		pick(ar, "TOTAL À PAYER: {{total_amount}} DZ", "المجموع للدفع: {{total_amount}} دج"),
		315, 500, 240, 40)
	total.Style.FontSize = 16
	total.Style.FontWeight = "900"
	total.Style.Color = "#dc2626"
	total.Style.TextAlign = "right"

	footer := authored("e8", KindStaticText,
		pick(ar, "Merci pour votre confiance", "شكرا لثقتكم"),
		40, 560, 515, 30)
	footer.Style.FontSize = 11
	footer.Style.Color = "#6b7280"
	footer.Style.TextAlign = "center"

	return []Element{logo, head, meta, store, client, table, total, footer}
}

func inspectionElements(ar bool, heading string) []Element {
	align := textAlignFor(ar)

	logo := authored("e1", KindLogo, "", 40, 30, 110, 55)
	head := title("e2", heading, 180, 45, 375, "center")

	meta := authored("e3", KindBoundText,
		pick(ar,
			"Réservation: {{res_number}}\nVéhicule: {{vehicle_brand}} {{vehicle_model}} ({{vehicle_plate}})\nClient: {{client_name}}\nDate: {{current_date}}",
			"الحجز: {{res_number}}\nالمركبة: {{vehicle_brand}} {{vehicle_model}} ({{vehicle_plate}})\nالزبون: {{client_name}}\nالتاريخ: {{current_date}}"),
		40, 110, 515, 70)
	meta.Style.FontSize = 10
	meta.Style.TextAlign = align

	security := authored("e4", KindChecklist, ChecklistPreset(ChecklistSecurity), 40, 200, 250, 170)
	equipment := authored("e5", KindChecklist, ChecklistPreset(ChecklistEquipment), 315, 200, 240, 170)
	fuel := authored("e6", KindFuelMileage, "", 40, 400, 300, 70)
	qr := authored("e7", KindQRPlaceholder, "", 480, 400, 70, 70)

	sigClient := signature("e8", pick(ar, "Signature du client", "توقيع الزبون"), 40, 520, 230, 80)
	sigAgent := signature("e9", pick(ar, "Signature de l'agent", "توقيع الوكيل"), 325, 520, 230, 80)

	return []Element{logo, head, meta, security, equipment, fuel, qr, sigClient, sigAgent}
}

package mcpserver

// LeadFormatContract documents how captured leads compose their details
// text, for LLM consumers submitting leads through the tool surface.
const LeadFormatContract = `# AutoVitrine Lead Format Contract

Every lead persists a single human-readable ` + "`" + `details` + "`" + ` text composed from
the typed form fields, labels in Brazilian Portuguese, fixed order.

## Financing lead

` + "```" + `
Cidade: <city>
Renda Mensal: R$ <income>
Entrada Proposta: R$ <down payment>
Obs: <notes>
` + "```" + `

## Trade-in/sell lead

` + "```" + `
Veículo de Troca: <model> (<year>)
Km: <mileage>
Preço Pretendido: R$ <price>
Fotos: <photo link>
Obs: <notes>
` + "```" + `

## Interest context

When the inquiry originates from a vehicle detail view, a context line is
prepended:

` + "```" + `
[Interesse: <context>]
` + "```" + `

## Rules

1. **Required fields.** Financing: name, phone, city, income, down payment.
   Sell: name, phone, car model, year, mileage, desired price.
2. **Values are verbatim.** Amounts are free-text in whole BRL; do not add
   currency formatting; the labels already carry ` + "`" + `R$` + "`" + `.
3. **Status starts as ` + "`" + `new` + "`" + `.** Only the dealership advances it.
4. **The handoff link is advisory.** The lead is durable before the
   WhatsApp URL is produced; a failed handoff never loses the lead.
`

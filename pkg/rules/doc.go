/*
Package rules holds the compiled-in replacement rule list.

🎯 Purpose:
- Defines the Rule record (literal substring or regex, plus a category tag)
- Provides the fixed, ordered Default() list the whole tool runs on

📝 Design Philosophy:
Order is part of the contract. Specific phrasings run before their generic
catch-alls ("Middle Eastern Restaurant" before "Middle Eastern"), dash-
prefixed shipping variants before the bare phrase, and the longer marketing
sentence before its substring. Because the literal rules run first, the
regex rules only ever see case variants the literals missed; that mirrors
how the site content was actually cleaned up.

The list is intentionally not configurable: this is a one-purpose cleanup
tool, not a general transformation framework.
*/
package rules

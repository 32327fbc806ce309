package services

// Localized voice response templates. Every lookup falls back to Hindi
// when the requested language has no entry, so a response is always
// produced.

const fallbackLanguage = "hi"

var greetingTemplates = map[string]string{
	"hi": "नमस्ते! मैं सक्ति-लिंक हूँ। मैं आपकी सीखने, कमाने और कानूनी जागरूकता में मदद कर सकती हूँ। आप क्या करना चाहेंगी?",
	"bn": "নমস্কার! আমি সক্তি-লিঙ্ক। আমি আপনাকে শেখা, উপার্জন এবং আইনি সচেতনতায় সাহায্য করতে পারি।",
	"ta": "வணக்கம்! நான் சக்தி-லிங்க். நான் உங்களுக்கு கற்றல், சம்பாதித்தல் மற்றும் சட்ட விழிப்புணர்வில் உதவ முடியும்.",
	"te": "నమస్కారం! నేను శక్తి-లింక్. నేను మీకు నేర్చుకోవడం, సంపాదించడం మరియు చట్టపరమైన అవగాహనలో సహాయం చేయగలను.",
}

var unknownIntentTemplates = map[string]string{
	"hi": "मुझे खेद है, मैं आपकी बात पूरी तरह समझ नहीं पाई। आप मुझसे सीखने, काम ढूंढने, या कानूनी सवालों के बारे में पूछ सकती हैं।",
	"bn": "দুঃখিত, আমি সম্পূর্ণভাবে বুঝতে পারিনি। আপনি আমাকে শেখা, কাজ খোঁজা বা আইনি প্রশ্ন সম্পর্কে জিজ্ঞাসা করতে পারেন।",
}

var errorTemplates = map[string]string{
	"hi": "मुझे खेद है, कुछ गड़बड़ हो गई। कृपया फिर से प्रयास करें।",
	"bn": "দুঃখিত, কিছু ভুল হয়েছে। অনুগ্রহ করে আবার চেষ্টা করুন।",
}

var noModulesTemplates = map[string]string{
	"hi": "इस श्रेणी में कोई मॉड्यूल उपलब्ध नहीं है। कृपया बाद में प्रयास करें।",
}

var noGigsTemplates = map[string]string{
	"hi": "अभी कोई काम उपलब्ध नहीं है। कृपया बाद में देखें।",
}

var gigIntroTemplates = map[string]string{
	"hi": "मैं आपके लिए काम ढूंढ सकती हूँ। आप किस प्रकार का काम चाहती हैं?",
}

var noApplicationsTemplates = map[string]string{
	"hi": "आपने अभी तक किसी काम के लिए आवेदन नहीं किया है।",
}

var teachPromptTemplates = map[string]string{
	"hi": "बहुत अच्छे! आप कौनसा कौशल सिखाना चाहती हैं? उदाहरण: सिलाई, खाना बनाना, कढ़ाई, आदि।",
}

var noTeachingSkillsTemplates = map[string]string{
	"hi": "अभी कोई कौशल सिखाने के लिए उपलब्ध नहीं है।",
}

var skillSwapIntroTemplates = map[string]string{
	"hi": "स्किल-स्वैप में आप अपने कौशल सिखा सकती हैं और क्रेडिट कमा सकती हैं। फिर उन क्रेडिट से नए कौशल सीख सकती हैं। आप सिखाना चाहती हैं या सीखना?",
}

var legalFallbackTemplates = map[string]string{
	"hi": "मैं आपके कानूनी सवालों में मदद कर सकती हूँ। कृपया अपना सवाल पूछें।",
}

var legalDisclaimerTemplates = map[string]string{
	"hi": "यह सामान्य जानकारी है, कानूनी सलाह नहीं। विशेष मामलों के लिए कानूनी विशेषज्ञ से परामर्श लें।",
}

var legalErrorTemplates = map[string]string{
	"hi": "कानूनी जानकारी प्राप्त करने में समस्या हुई। कृपया बाद में प्रयास करें।",
}

var categoryIntroTemplates = map[string]map[string]string{
	"financial_literacy": {
		"hi": "वित्तीय साक्षरता के ये मॉड्यूल उपलब्ध हैं",
	},
	"digital_safety": {
		"hi": "डिजिटल सुरक्षा के ये मॉड्यूल उपलब्ध हैं",
	},
	"vocational_skills": {
		"hi": "व्यावसायिक कौशल के ये मॉड्यूल उपलब्ध हैं",
	},
}

func localize(templates map[string]string, language string) string {
	if msg, ok := templates[language]; ok {
		return msg
	}
	return templates[fallbackLanguage]
}

func categoryIntro(category, language string) string {
	byLang, ok := categoryIntroTemplates[category]
	if !ok {
		return ""
	}
	if msg, ok := byLang[language]; ok {
		return msg
	}
	return byLang[fallbackLanguage]
}
